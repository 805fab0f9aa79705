package base64

import "strings"

// GetContentType extracts the MIME type from a data URI such as
// "data:image/png;base64,...". Gallery uploads sent inline use this to
// validate the image type before the payload is decoded.
func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}
