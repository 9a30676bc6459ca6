package database

// Queries are written with ? placeholders and rebound for the active driver.
const (
	projectColumns    = `id, title, author, genre, subgenre, created_at`
	briefRunColumns   = `id, project_id, request_json, response_json, model, status, error_message, created_at`
	coverImageColumns = `id, project_id, brief_run_id, direction_index, prompt, model, size, image_path, created_at`

	insertProject = `
		INSERT INTO projects (id, title, author, genre, subgenre)
		VALUES (?, ?, ?, ?, ?)`
	insertBriefRun = `
		INSERT INTO brief_runs (id, project_id, request_json, response_json, model, status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	insertCoverImage = `
		INSERT INTO cover_images (id, project_id, brief_run_id, direction_index, prompt, model, size, image_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectProject     = `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	selectBriefRun    = `SELECT ` + briefRunColumns + ` FROM brief_runs WHERE id = ?`
	selectCoverImage  = `SELECT ` + coverImageColumns + ` FROM cover_images WHERE id = ?`
	// List queries take the dialect's insertion-order column (see DB.seqColumn)
	// as a tie-break for rows stamped within the same clock tick.
	listProjects      = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, %[1]s DESC`
	listBriefRuns     = `SELECT ` + briefRunColumns + ` FROM brief_runs WHERE project_id = ? ORDER BY created_at DESC, %[1]s DESC`
	listCoverImages   = `SELECT ` + coverImageColumns + ` FROM cover_images WHERE project_id = ? ORDER BY created_at DESC, %[1]s DESC`
	deleteProject     = `DELETE FROM projects WHERE id = ?`
	deleteBriefRun    = `DELETE FROM brief_runs WHERE id = ?`
	selectCreatedAtOf = `SELECT created_at FROM %s WHERE id = ?`
)
