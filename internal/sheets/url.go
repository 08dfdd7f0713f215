// Package sheets loads catalogs from Google Sheets published as CSV.
package sheets

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"gstbill/internal/domain"
)

const exportURLFormat = "https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s"

var (
	idPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`),
		regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`),
		regexp.MustCompile(`key=([a-zA-Z0-9-_]+)`),
		regexp.MustCompile(`^([a-zA-Z0-9-_]+)$`),
	}
	gidPattern = regexp.MustCompile(`[#&?]gid=([0-9]+)`)
)

// ExportURL converts any share, edit or published link (or a bare
// spreadsheet ID) into the CSV export URL. The first sheet (gid 0) is used
// unless the link names another.
func ExportURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.ErrInvalidSheetURL
	}
	if isGoogleCSVLink(raw) {
		return raw, nil
	}

	var id string
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			id = m[1]
			break
		}
	}
	if id == "" {
		return "", domain.ErrInvalidSheetURL
	}

	gid := "0"
	if m := gidPattern.FindStringSubmatch(raw); m != nil {
		gid = m[1]
	}
	return fmt.Sprintf(exportURLFormat, id, gid), nil
}

func isGoogleCSVLink(raw string) bool {
	if !strings.Contains(raw, "/export?format=csv") && !strings.Contains(raw, "output=csv") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host == "docs.google.com"
}
