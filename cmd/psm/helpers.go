package main

import (
	"github.com/spf13/cobra"

	"github.com/eugenetaranov/psm/internal/errors"
)

// normalizeErr normalizes any error to XError
func normalizeErr(err error) *errors.XError {
	return errors.AsOrWrap(err)
}

// usageArgs classifies argument count errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Wrap(errors.CodeUsage, "invalid arguments",
				map[string]any{"usage": cmd.UseLine()}, err)
		}
		return nil
	}
}

// flagError classifies flag parsing errors as usage errors.
func flagError(cmd *cobra.Command, err error) error {
	return errors.Wrap(errors.CodeUsage, "invalid flag", map[string]any{"usage": cmd.UseLine()}, err)
}

// aliasNotFound reports an alias that a command requires to exist.
func aliasNotFound(alias string) error {
	return errors.New(errors.CodeAliasNotFound, "alias not found", map[string]any{"alias": alias})
}

// requireValue rejects an empty alias or record field before anything is
// written, since the registry cannot load an empty alias back.
func requireValue(name, value string) error {
	if value == "" {
		return errors.New(errors.CodeUsage, name+" must not be empty", map[string]any{"argument": name})
	}
	return nil
}
