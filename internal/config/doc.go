// Package config loads vango-modal configuration.
//
// The configuration is stored in vango-modal.json or vango-modal.yaml in
// the working directory. Command-line flags override file values.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 8080,
//	    "title": "Modal demo",
//	    "shutdownTimeout": "30s",
//	    "metrics": true,
//	    "tracing": false
//	  },
//	  "session": {
//	    "readTimeout": "60s",
//	    "writeTimeout": "10s",
//	    "maxMessageSize": 65536,
//	    "maxEventQueue": 256
//	  },
//	  "log": {"level": "info", "format": "text"},
//	  "modal": {"labelledBy": "modal-title", "zIndex": 2147483647}
//	}
//
// The YAML file uses the same keys.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.NewLogger(os.Stderr)
package config
