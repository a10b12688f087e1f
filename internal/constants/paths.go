package constants

// Application paths
const (
	// AppConfigDir is the directory name for the sample's configuration
	AppConfigDir = ".sprig-sample"

	// ConfigFileName is the filename for the optional YAML configuration
	ConfigFileName = "config.yaml"

	// IdentityFileName is the filename the persisted identity is stored in
	IdentityFileName = "identity.yaml"

	// LogFileName is the default log file name
	LogFileName = "sprig-sample.log"

	// LogFilePermissions defines the permissions for log files
	LogFilePermissions = 0666

	// ConfigDirPermissions defines the permissions for the configuration directory
	ConfigDirPermissions = 0o700

	// IdentityFilePermissions defines the permissions for the identity file
	IdentityFilePermissions = 0o600
)
