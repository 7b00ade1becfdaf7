// Package config implements types for handling the configuation for the app.
package config

import (
	"os"

	"github.com/datarhei/sheepcounter/config/value"
	"github.com/datarhei/sheepcounter/config/vars"

	haikunator "github.com/atrox/haikunatorgo/v2"
	"github.com/google/uuid"
)

// Data is the actual configuration data for the app
type Data struct {
	Version int64  `json:"version"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Log     struct {
		Level    string   `json:"level" enums:"debug,info,warn,error,silent"`
		Topics   []string `json:"topics"`
		Format   string   `json:"format" enums:"console,json"`
		MaxLines int      `json:"max_lines"`
	} `json:"log"`
	HTTP struct {
		MaxBodySize int64 `json:"max_body_size_kbytes"`
	} `json:"http"`
	Storage struct {
		Backend     string            `json:"backend" enums:"disk,s3"`
		DefaultFile string            `json:"default_file"`
		MimeTypes   string            `json:"mimetypes_file"`
		Types       map[string]string `json:"types"`
		Disk        struct {
			Dir string `json:"dir"`
		} `json:"disk"`
		S3 struct {
			Endpoint        string `json:"endpoint"`
			AccessKeyID     string `json:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key"`
			Region          string `json:"region"`
			Bucket          string `json:"bucket"`
			UseSSL          bool   `json:"use_ssl"`
		} `json:"s3"`
	} `json:"storage"`
	Metrics struct {
		Enable bool `json:"enable"`
	} `json:"metrics"`
}

// Config is a wrapper for Data
type Config struct {
	vars vars.Variables

	Data
}

// DefaultTypes are the content types the static files are served with unless
// configured otherwise. The "*" entry applies to files without an extension.
var DefaultTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	"*":     "application/octet-stream",
}

// New returns a Config which is initialized with its default values
func New() *Config {
	cfg := &Config{}

	cfg.init()

	return cfg
}

func (d *Config) init() {
	d.vars.Register(value.NewInt64(&d.Version, 1), "version", "", "Configuration layout version", true, false)
	d.vars.Register(value.NewString(&d.ID, uuid.New().String()), "id", "SHEEP_ID", "ID for this instance", true, false)
	d.vars.Register(value.NewString(&d.Name, haikunator.New().Haikunate()), "name", "SHEEP_NAME", "A human readable name for this instance", false, false)
	d.vars.Register(value.NewAddress(&d.Address, ":7437"), "address", "SHEEP_ADDRESS", "HTTP listening address", true, false)

	// Log
	d.vars.Register(value.NewChoice(&d.Log.Level, "info", []string{"silent", "error", "warn", "info", "debug"}), "log.level", "SHEEP_LOG_LEVEL", "Loglevel: silent, error, warn, info, debug", false, false)
	d.vars.Register(value.NewStringList(&d.Log.Topics, []string{}, ","), "log.topics", "SHEEP_LOG_TOPICS", "Show only selected log topics", false, false)
	d.vars.Register(value.NewChoice(&d.Log.Format, "console", []string{"console", "json"}), "log.format", "SHEEP_LOG_FORMAT", "Log format: console, json", false, false)
	d.vars.Register(value.NewInt(&d.Log.MaxLines, 1000), "log.max_lines", "SHEEP_LOG_MAXLINES", "Number of latest log lines to keep in memory", false, false)

	// HTTP
	d.vars.Register(value.NewInt64(&d.HTTP.MaxBodySize, 16), "http.max_body_size_kbytes", "SHEEP_HTTP_MAXBODYSIZEKBYTES", "Max. allowed size of a request body in kilobytes", false, false)

	// Storage
	d.vars.Register(value.NewChoice(&d.Storage.Backend, "disk", []string{"disk", "s3"}), "storage.backend", "SHEEP_STORAGE_BACKEND", "Where the static files are read from: disk, s3", false, false)
	d.vars.Register(value.NewString(&d.Storage.DefaultFile, "index.html"), "storage.default_file", "SHEEP_STORAGE_DEFAULT_FILE", "File to serve for a directory", true, false)
	d.vars.Register(value.NewFile(&d.Storage.MimeTypes, ""), "storage.mimetypes_file", "SHEEP_STORAGE_MIMETYPES_FILE", "Path to file with mime-types, extends storage.types", false, false)
	d.vars.Register(value.NewStringMapString(&d.Storage.Types, DefaultTypes), "storage.types", "SHEEP_STORAGE_TYPES", "List of extension:content-type mappings", false, false)

	// Storage (Disk)
	d.vars.Register(value.NewString(&d.Storage.Disk.Dir, "./static"), "storage.disk.dir", "SHEEP_STORAGE_DISK_DIR", "Directory with the static files, exposed on /", false, false)

	// Storage (S3)
	d.vars.Register(value.NewEndpoint(&d.Storage.S3.Endpoint, ""), "storage.s3.endpoint", "SHEEP_STORAGE_S3_ENDPOINT", "Endpoint of the S3 service", false, false)
	d.vars.Register(value.NewString(&d.Storage.S3.AccessKeyID, ""), "storage.s3.access_key_id", "SHEEP_STORAGE_S3_ACCESSKEYID", "Access key for the S3 service", false, false)
	d.vars.Register(value.NewString(&d.Storage.S3.SecretAccessKey, ""), "storage.s3.secret_access_key", "SHEEP_STORAGE_S3_SECRETACCESSKEY", "Secret for the S3 service", false, true)
	d.vars.Register(value.NewString(&d.Storage.S3.Region, ""), "storage.s3.region", "SHEEP_STORAGE_S3_REGION", "Region of the bucket", false, false)
	d.vars.Register(value.NewString(&d.Storage.S3.Bucket, ""), "storage.s3.bucket", "SHEEP_STORAGE_S3_BUCKET", "Bucket with the static files", false, false)
	d.vars.Register(value.NewBool(&d.Storage.S3.UseSSL, true), "storage.s3.use_ssl", "SHEEP_STORAGE_S3_USESSL", "Use TLS to talk to the S3 service", false, false)

	// Metrics
	d.vars.Register(value.NewBool(&d.Metrics.Enable, true), "metrics.enable", "SHEEP_METRICS_ENABLE", "Enable prometheus endpoint /metrics", false, false)
}

// Merge applies the environment variables to the config
func (d *Config) Merge() {
	d.vars.Merge()
}

// Validate validates the current state of the Config for completeness and sanity. Errors are
// written to the log. Use resetLogs to indicate to reset the logs prior validation.
func (d *Config) Validate(resetLogs bool) {
	if resetLogs {
		d.vars.ResetLogs()
	}

	if d.Version != 1 {
		d.vars.Log("error", "version", "unknown configuration layout version")

		return
	}

	d.vars.Validate()

	// Individual sanity checks

	if d.HTTP.MaxBodySize <= 0 {
		d.vars.Log("error", "http.max_body_size_kbytes", "must be greater than 0")
	}

	// The disk backend needs a directory, the S3 backend an endpoint and a bucket
	switch d.Storage.Backend {
	case "disk":
		if len(d.Storage.Disk.Dir) == 0 {
			d.vars.Log("error", "storage.disk.dir", "a directory is required for the disk backend")
		} else if finfo, err := os.Stat(d.Storage.Disk.Dir); err != nil {
			d.vars.Log("error", "storage.disk.dir", "%s does not exist", d.Storage.Disk.Dir)
		} else if !finfo.IsDir() {
			d.vars.Log("error", "storage.disk.dir", "%s is not a directory", d.Storage.Disk.Dir)
		}
	case "s3":
		if len(d.Storage.S3.Endpoint) == 0 {
			d.vars.Log("error", "storage.s3.endpoint", "an endpoint is required for the s3 backend")
		}

		if len(d.Storage.S3.Bucket) == 0 {
			d.vars.Log("error", "storage.s3.bucket", "a bucket is required for the s3 backend")
		}
	}

	for ext := range d.Storage.Types {
		if ext == "*" {
			continue
		}

		if len(ext) < 2 || ext[0] != '.' {
			d.vars.Log("error", "storage.types", "'%s' is not a file extension, it must start with a dot", ext)
		}
	}
}

// Messages calls for each log entry the provided callback. The level has the values 'error', 'warn', or 'info'.
// The name is the name of the configuration value, e.g. 'storage.disk.dir'
func (d *Config) Messages(logger func(level string, v vars.Variable, message string)) {
	d.vars.Messages(logger)
}

// HasErrors returns whether there are some error messages in the log.
func (d *Config) HasErrors() bool {
	return d.vars.HasErrors()
}

// Overrides returns a list of configuration value names that have been overriden by an environment variable.
func (d *Config) Overrides() []string {
	return d.vars.Overrides()
}
