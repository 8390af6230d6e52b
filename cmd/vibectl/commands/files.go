package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"vibechart/internal/chartconfig"
	"vibechart/internal/util/jsonutil"
)

// readConfig loads a configuration file. An empty path or "-" reads stdin; a
// missing path with allowMissing returns an empty tree.
func readConfig(path string, allowMissing bool) (chartconfig.Tree, error) {
	var (
		raw []byte
		err error
	)
	switch strings.TrimSpace(path) {
	case "":
		if allowMissing {
			return chartconfig.Tree{}, nil
		}
		raw, err = io.ReadAll(os.Stdin)
	case "-":
		raw, err = io.ReadAll(os.Stdin)
	default:
		raw, err = os.ReadFile(path)
		if os.IsNotExist(err) && allowMissing {
			return chartconfig.Tree{}, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	tree, err := jsonutil.DecodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return tree, nil
}

func printTree(w io.Writer, t chartconfig.Tree) error {
	out, err := jsonutil.MarshalNoEscapeIndent(t, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
