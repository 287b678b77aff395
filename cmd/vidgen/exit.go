package vidgencmder

import (
	"context"
	"errors"

	"github.com/papercomputeco/vidgen/pkg/catalog"
	"github.com/papercomputeco/vidgen/pkg/encoder"
	"github.com/papercomputeco/vidgen/pkg/generate"
	"github.com/papercomputeco/vidgen/pkg/saver"
	"github.com/papercomputeco/vidgen/pkg/transport"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitAPIStatus   = 2
	ExitNetwork     = 3
	ExitSave        = 4
	ExitInterrupted = 130
)

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		imageErr  encoder.InvalidImageError
		promptErr generate.InvalidPromptError
		modelErr  catalog.ModelNotFoundError
		saveErr   saver.SaveError
	)
	switch {
	case errors.As(err, &imageErr), errors.As(err, &promptErr), errors.As(err, &modelErr):
		return ExitFailure
	case errors.As(err, &saveErr):
		return ExitSave
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	}

	if kind, ok := transport.KindOf(err); ok {
		switch kind {
		case transport.KindStatus:
			return ExitAPIStatus
		case transport.KindTimeout, transport.KindConnection:
			return ExitNetwork
		}
	}

	return ExitFailure
}
