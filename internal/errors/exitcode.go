package errors

// ExitCode is the process exit status for a failed command.
type ExitCode int

const (
	ExitOK ExitCode = 0

	// 1: alias not found where one was required
	ExitNotFound ExitCode = 1

	// 2: malformed input or wrong usage
	ExitUsage ExitCode = 2

	// 3: config or registry file problems
	ExitConfig ExitCode = 3

	// 4: external tool could not be launched, or its input is unusable
	ExitDispatch ExitCode = 4

	// 5: public key installation reported failure
	ExitKeyInstall ExitCode = 5

	// 10: internal error
	ExitInternal ExitCode = 10
)

func ExitCodeFor(code Code) ExitCode {
	switch code {
	case CodeAliasNotFound:
		return ExitNotFound
	case CodeMalformedAddress, CodeInvalidRemoteSpec, CodeUsage, CodeAliasExists:
		return ExitUsage
	case CodeCfgNotFound, CodeCfgInvalid,
		CodeRegistryNotFound, CodeRegistryInvalid, CodeRegistryWrite:
		return ExitConfig
	case CodeSpawnFailed, CodeKeyUnreadable:
		return ExitDispatch
	case CodeKeyInstallFailed:
		return ExitKeyInstall
	case CodeInternal:
		fallthrough
	default:
		return ExitInternal
	}
}
