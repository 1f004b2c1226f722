package run

import (
	"errors"
	"os"
	"strings"
)

const (
	fileFlag = "file"
)

var (
	params = &runParams{}

	errNoQuery = errors.New("no query given, pass it as arguments or with --file")
)

type runParams struct {
	file  string
	query string
}

func (p *runParams) initQuery(args []string) error {
	if p.file != "" {
		raw, err := os.ReadFile(p.file)
		if err != nil {
			return err
		}

		p.query = string(raw)
	} else {
		p.query = strings.Join(args, " ")
	}

	if strings.TrimSpace(p.query) == "" {
		return errNoQuery
	}

	return nil
}
