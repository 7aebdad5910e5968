package evolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"othello_go/internal/game"
)

const (
	generationRule = "*********************************************"
	matchRule      = "*************************"
	optimumRule    = "................................."
)

// FileHistory writes one plain-text record per generation to Dir/log<N>.txt:
// the population in league order, then every match-up with its winner. The
// optimum is appended to the last file when the run ends.
type FileHistory struct {
	Dir string

	buf  strings.Builder
	last string
}

func NewFileHistory(dir string) *FileHistory {
	return &FileHistory{Dir: dir}
}

// Path returns the file that holds generation gen.
func (h *FileHistory) Path(gen int) string {
	return filepath.Join(h.Dir, fmt.Sprintf("log%d.txt", gen))
}

func (h *FileHistory) GenerationStarted(gen int, pop []game.Weights) error {
	h.buf.Reset()
	fmt.Fprintf(&h.buf, "%s\ngeneration number %d\n", generationRule, gen)
	for _, w := range pop {
		fmt.Fprintf(&h.buf, "%v\n", w)
	}
	return nil
}

func (h *FileHistory) MatchPlayed(m Match) error {
	fmt.Fprintf(&h.buf, "%s\ngenes fight: %d %v vs %v\n", matchRule, m.Number, m.Black, m.White)
	if w, ok := m.WinnerWeights(); ok {
		fmt.Fprintf(&h.buf, "winner is: %v\n", w)
	} else {
		h.buf.WriteString("tie\n")
	}
	return nil
}

func (h *FileHistory) GenerationFinished(gen int, _ []Standing) error {
	if err := os.MkdirAll(h.Dir, 0755); err != nil {
		return errors.Wrapf(err, "history dir %s", h.Dir)
	}
	path := h.Path(gen)
	if err := os.WriteFile(path, []byte(h.buf.String()), 0644); err != nil {
		return errors.Wrapf(err, "write history %s", path)
	}
	h.last = path
	h.buf.Reset()
	return nil
}

func (h *FileHistory) Finished(best Standing) error {
	if h.last == "" {
		return nil
	}
	f, err := os.OpenFile(h.last, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "append optimum to %s", h.last)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s\nOPTIMUM WEIGHT LIST\n%v\n", optimumRule, best.Weights); err != nil {
		return errors.Wrapf(err, "append optimum to %s", h.last)
	}
	return nil
}
