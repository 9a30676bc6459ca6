package openai

import (
	"encoding/base64"
	"fmt"
)

type PayloadKind int

const (
	PayloadMalformed PayloadKind = iota
	PayloadEmbeddedBytes
	PayloadExternalReference
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadEmbeddedBytes:
		return "embedded_bytes"
	case PayloadExternalReference:
		return "external_reference"
	default:
		return "malformed"
	}
}

// ImagePayload is one entry of an images response. Data is set for
// PayloadEmbeddedBytes, URL for PayloadExternalReference and Reason for
// PayloadMalformed.
type ImagePayload struct {
	Kind   PayloadKind
	Data   []byte
	URL    string
	Reason string
}

type imageDatum struct {
	B64JSON string `json:"b64_json"`
	URL     string `json:"url"`
}

func decodeImagePayload(item imageDatum) ImagePayload {
	switch {
	case item.B64JSON != "":
		data, err := base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil {
			return ImagePayload{Kind: PayloadMalformed, Reason: fmt.Sprintf("invalid base64: %v", err)}
		}
		if len(data) == 0 {
			return ImagePayload{Kind: PayloadMalformed, Reason: "empty image data"}
		}
		return ImagePayload{Kind: PayloadEmbeddedBytes, Data: data}
	case item.URL != "":
		return ImagePayload{Kind: PayloadExternalReference, URL: item.URL}
	}
	return ImagePayload{Kind: PayloadMalformed, Reason: "neither b64_json nor url present"}
}
