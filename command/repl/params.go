package repl

import (
	"path/filepath"

	"github.com/iankressin/eql-sub000/command"
	"github.com/mitchellh/go-homedir"
)

const (
	historyFlag = "history"
	prompt      = "eql> "
)

var (
	params = &replParams{}
)

type replParams struct {
	historyPath string
}

// initHistoryPath defaults the history file to the home directory
func (p *replParams) initHistoryPath() error {
	if p.historyPath != "" {
		expanded, err := homedir.Expand(p.historyPath)
		if err != nil {
			return err
		}

		p.historyPath = expanded

		return nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	p.historyPath = filepath.Join(home, command.DefaultHistoryFile)

	return nil
}
