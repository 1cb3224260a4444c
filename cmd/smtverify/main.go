// Command smtverify checks a single sparse-Merkle-tree inclusion or
// non-inclusion claim, read as JSON from a file or stdin, against the
// claimed root hash.
//
// Usage:
//
//	smtverify [flags]
//
// Flags:
//
//	--file       Path to the JSON claim (default: read from stdin)
//	--verbosity  Log level: debug, info, warn, error (default: info)
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	smtlog "github.com/yihuang/libra/log"
	"github.com/yihuang/libra/smt"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. It accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	filePath, verbosity, exit, code := parseFlags(args)
	if exit {
		return code
	}

	logger := smtlog.New(smtlog.LevelFromString(verbosity).SlogLevel()).Module("smtverify")

	var src *os.File
	if filePath == "" || filePath == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(filePath)
		if err != nil {
			logger.Error("failed to open claim file", "path", filePath, "error", err)
			return 1
		}
		defer f.Close()
		src = f
	}

	c, err := decodeClaim(src)
	if err != nil {
		logger.Error("failed to decode claim", "error", err)
		return 2
	}

	root, key, value, proof, err := c.build()
	if err != nil {
		logger.Error("failed to parse claim fields", "error", err)
		return 2
	}

	if err := proof.Verify(root, key, value); err != nil {
		switch {
		case errors.Is(err, smt.ErrRootMismatch),
			errors.Is(err, smt.ErrValueHashMismatch),
			errors.Is(err, smt.ErrNonInclusionWhereInclusionExpected),
			errors.Is(err, smt.ErrKeyExistsInNonInclusionProof),
			errors.Is(err, smt.ErrInvalidNonInclusionProof),
			errors.Is(err, smt.ErrTooManySiblings):
			logger.Info("claim rejected", "key", key.Hex(), "reason", err)
		default:
			logger.Error("unexpected verification error", "error", err)
		}
		return 1
	}

	kind := "non-inclusion"
	if value != nil {
		kind = "inclusion"
	}
	logger.Info("claim verified", "key", key.Hex(), "kind", kind)
	fmt.Println("OK")
	return 0
}

// parseFlags parses CLI arguments. Returns the claim file path, the
// requested verbosity, whether the caller should exit immediately, and
// the exit code to use if so.
func parseFlags(args []string) (filePath, verbosity string, exit bool, code int) {
	fs := flag.NewFlagSet("smtverify", flag.ContinueOnError)
	fs.StringVar(&filePath, "file", "", "path to the JSON claim (default: read from stdin)")
	fs.StringVar(&verbosity, "verbosity", "info", "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return "", "", true, 2
	}
	return filePath, verbosity, false, 0
}
