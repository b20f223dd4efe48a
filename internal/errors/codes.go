package errors

// Code is a stable error identifier printed with every failure.
// Codes are only ever added; an existing code never changes meaning.
type Code string

const (
	// Input / usage
	CodeMalformedAddress  Code = "PSM_MALFORMED_ADDRESS"
	CodeInvalidRemoteSpec Code = "PSM_INVALID_REMOTE_SPEC"
	CodeUsage             Code = "PSM_USAGE"
	CodeAliasExists       Code = "PSM_ALIAS_EXISTS"

	// Lookup
	CodeAliasNotFound Code = "PSM_ALIAS_NOT_FOUND"

	// Config / registry persistence
	CodeCfgNotFound      Code = "PSM_CFG_NOT_FOUND"
	CodeCfgInvalid       Code = "PSM_CFG_INVALID"
	CodeRegistryNotFound Code = "PSM_REGISTRY_NOT_FOUND"
	CodeRegistryInvalid  Code = "PSM_REGISTRY_INVALID"
	CodeRegistryWrite    Code = "PSM_REGISTRY_WRITE"

	// Dispatch
	CodeSpawnFailed      Code = "PSM_SPAWN_FAILED"
	CodeKeyUnreadable    Code = "PSM_KEY_UNREADABLE"
	CodeKeyInstallFailed Code = "PSM_KEY_INSTALL_FAILED"

	// Internal
	CodeInternal Code = "PSM_INTERNAL"
)

func AllCodes() []Code {
	return []Code{
		CodeMalformedAddress,
		CodeInvalidRemoteSpec,
		CodeUsage,
		CodeAliasExists,
		CodeAliasNotFound,
		CodeCfgNotFound,
		CodeCfgInvalid,
		CodeRegistryNotFound,
		CodeRegistryInvalid,
		CodeRegistryWrite,
		CodeSpawnFailed,
		CodeKeyUnreadable,
		CodeKeyInstallFailed,
		CodeInternal,
	}
}
