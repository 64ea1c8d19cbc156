// Package airfoilfile reads and rewrites airfoil coordinate files in Selig
// format: one header line followed by one "x y" pair per line, starting and
// ending at the trailing edge with the upper surface first.
package airfoilfile

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/acrovato/gmshcfd/internal/domain"
	"github.com/acrovato/gmshcfd/internal/ports"
)

type Loader struct{}

var _ ports.AirfoilSource = (*Loader)(nil)

func NewLoader() *Loader { return &Loader{} }

// Load reads the coordinate pairs of a Selig file. The header line is
// skipped and blank lines are ignored.
func (l *Loader) Load(path string) ([]domain.Point2, error) {
	f, err := os.Open(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
			err = fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, &domain.OpError{Op: "airfoil.load", Kind: kind, Path: path, Err: err}
	}
	defer f.Close()

	var pts []domain.Point2
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			continue // header
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, badFormat(path, fmt.Errorf("line %d: expected 2 columns, got %d: %w", line, len(fields), domain.ErrBadFormat))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, badFormat(path, fmt.Errorf("line %d: %v: %w", line, err, domain.ErrBadFormat))
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, badFormat(path, fmt.Errorf("line %d: %v: %w", line, err, domain.ErrBadFormat))
		}
		pts = append(pts, domain.Point2{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{Op: "airfoil.load", Kind: domain.KindExecution, Path: path, Err: err}
	}
	if len(pts) == 0 {
		return nil, badFormat(path, fmt.Errorf("no coordinates found: %w", domain.ErrBadFormat))
	}
	return pts, nil
}

func badFormat(path string, err error) error {
	return &domain.OpError{Op: "airfoil.load", Kind: domain.KindBadFormat, Path: path, Err: err}
}
