package bot

import (
	"fmt"

	"webio-bot/extract"
)

// PageReply renders the outcome of a page extraction for the user.
func PageReply(p extract.Page, err error) string {
	if err == nil {
		return p.String()
	}
	if extract.KindOf(err) == extract.KindTransport {
		return fmt.Sprintf("Network error: %v", err)
	}
	return fmt.Sprintf("An error occurred: %v", err)
}

// DocumentReply renders the outcome of a PDF extraction for the user.
func DocumentReply(d extract.Document, err error) string {
	if err == nil {
		return d.String()
	}
	if extract.KindOf(err) == extract.KindParse {
		return fmt.Sprintf("Failed to read the PDF: %v", err)
	}
	return fmt.Sprintf("An error occurred: %v", err)
}
