package importer

import (
	"errors"
	"strings"

	"github.com/ryanuber/go-glob"
)

// Kind is the format of an uploaded device list.
type Kind string

const (
	KindXLSX Kind = "xlsx"
	KindCSV  Kind = "csv"
)

var (
	ErrNoFile              = errors.New("no file was uploaded")
	ErrUnsupportedFileType = errors.New("only .xlsx and .csv files are supported")
	ErrFileTooLarge        = errors.New("the file exceeds the maximum upload size")
)

// patterns maps file name patterns to the kind of file they denote.
var patterns = []struct {
	pattern string
	kind    Kind
}{
	{"*.xlsx", KindXLSX},
	{"*.csv", KindCSV},
}

// KindOf determines the kind of the file from its name. The extension
// is matched case-insensitively.
func KindOf(filename string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(filename))

	for _, p := range patterns {
		if glob.Glob(p.pattern, name) {
			return p.kind, nil
		}
	}

	return "", ErrUnsupportedFileType
}
