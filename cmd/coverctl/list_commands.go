package main

import (
	"fmt"
	"strconv"

	"cover-builder-backend/internal/database"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDB(func(db *database.DB) error {
				projects, err := db.NewSession().ListProjects(cmd.Context())
				if err != nil {
					return err
				}
				if len(projects) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No projects")
					return nil
				}

				rows := make([][]string, 0, len(projects))
				for _, p := range projects {
					rows = append(rows, []string{
						p.ID.String(),
						truncate(p.Title, 40),
						p.Author,
						p.Genre,
						p.Subgenre.String,
						formatTime(p.CreatedAt),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Title", "Author", "Genre", "Subgenre", "Created"},
					rows, nil,
				))
				return nil
			})
		},
	}
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs <project-id>",
		Short: "List brief runs for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			return ctx.withDB(func(db *database.DB) error {
				session := db.NewSession()
				if err := requireProject(cmd, session, projectID); err != nil {
					return err
				}
				runs, err := session.ListBriefRuns(cmd.Context(), projectID)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No brief runs")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, r := range runs {
					rows = append(rows, []string{
						r.ID.String(),
						string(r.Status),
						r.Model,
						truncate(r.ErrorMessage.String, 48),
						formatTime(r.CreatedAt),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Status", "Model", "Error", "Created"},
					rows, nil,
				))
				return nil
			})
		},
	}
}

func newImagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "images <project-id>",
		Short: "List generated images for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			return ctx.withDB(func(db *database.DB) error {
				session := db.NewSession()
				if err := requireProject(cmd, session, projectID); err != nil {
					return err
				}
				images, err := session.ListCoverImages(cmd.Context(), projectID)
				if err != nil {
					return err
				}
				if len(images) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No images")
					return nil
				}

				rows := make([][]string, 0, len(images))
				for _, img := range images {
					run, direction := "-", "-"
					if img.BriefRunID.Valid {
						run = img.BriefRunID.UUID.String()
					}
					if img.DirectionIndex.Valid {
						direction = strconv.Itoa(int(img.DirectionIndex.Int32))
					}
					rows = append(rows, []string{
						img.ID.String(),
						run,
						direction,
						img.Model,
						img.Size,
						img.ImagePath,
						formatTime(img.CreatedAt),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Brief run", "Dir", "Model", "Size", "Path", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func parseProjectID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid project id %q", value)
	}
	return id, nil
}

func requireProject(cmd *cobra.Command, session *database.Session, id uuid.UUID) error {
	project, err := session.GetProject(cmd.Context(), id)
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}
