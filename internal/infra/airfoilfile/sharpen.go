package airfoilfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/acrovato/gmshcfd/internal/domain"
)

// Sharpen converts the blunt trailing edge of a Selig file into a sharp one
// by blending the thickness of the nChange points nearest the trailing edge
// linearly to zero, keeping the camber line. The result is written next to
// the input as <base>_ste.dat and its path is returned.
func Sharpen(path string, nChange int) (string, error) {
	if nChange < 2 {
		return "", &domain.OpError{Op: "airfoil.sharpen", Kind: domain.KindInvalidConfig, Path: path,
			Err: fmt.Errorf("need at least 2 points to blend, got %d: %w", nChange, domain.ErrInvalidConfig)}
	}

	header, err := readHeader(path)
	if err != nil {
		return "", err
	}
	pts, err := NewLoader().Load(path)
	if err != nil {
		return "", err
	}
	if len(pts) < 2*nChange {
		return "", &domain.OpError{Op: "airfoil.sharpen", Kind: domain.KindBadFormat, Path: path,
			Err: fmt.Errorf("%d coordinates, need at least %d: %w", len(pts), 2*nChange, domain.ErrBadFormat)}
	}

	// Upper surface runs from the trailing edge forward, lower surface ends
	// at it: point i pairs with point len-1-i.
	n := len(pts)
	last := (pts[nChange-1].Y - pts[n-nChange].Y) / 2
	for i := 0; i < nChange; i++ {
		mean := (pts[i].Y + pts[n-1-i].Y) / 2
		thick := last * float64(i) / float64(nChange-1)
		pts[i].Y = mean + thick
		pts[n-1-i].Y = mean - thick
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(filepath.Dir(path), base+"_ste.dat")
	if err := write(out, header+" sharp TE", pts); err != nil {
		return "", err
	}
	return out, nil
}

func readHeader(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &domain.OpError{Op: "airfoil.sharpen", Kind: domain.KindNotFound, Path: path,
			Err: fmt.Errorf("%w: %s", domain.ErrNotFound, path)}
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return "", &domain.OpError{Op: "airfoil.sharpen", Kind: domain.KindBadFormat, Path: path,
			Err: fmt.Errorf("empty file: %w", domain.ErrBadFormat)}
	}
	return strings.TrimSpace(sc.Text()), nil
}

func write(path, header string, pts []domain.Point2) error {
	f, err := os.Create(path)
	if err != nil {
		return &domain.OpError{Op: "airfoil.sharpen", Kind: domain.KindExecution, Path: path, Err: err}
	}
	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "%s\n", header)
	for _, p := range pts {
		fmt.Fprintf(bw, "%1.5e %1.5e\n", p.X, p.Y)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return &domain.OpError{Op: "airfoil.sharpen", Kind: domain.KindExecution, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &domain.OpError{Op: "airfoil.sharpen", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}
