// Package config loads the enola configuration file.
//
// A configuration is JSON with one section per subsystem:
//
//	{
//	  "version": "1.0.0",
//	  "catalog": {"path": "kinds.yaml"},
//	  "datatypes": {"vocabularies": ["xsd", "enola"]},
//	  "store": {"backend": "sqlite", "sqlite_path": "things.db"},
//	  "pipeline": {"workers": 8, "queue_size": 256, "policy": "abort"},
//	  "cache": {"enabled": true, "strategy": "lru", "max_size": 1024}
//	}
//
// Loader starts from Default, deep-merges each layer over it so a file only
// needs the keys it changes, then applies ENOLA_* environment overrides:
//
//	loader := config.NewLoader()
//	loader.AddLayer("enola.json")
//	loader.AddLayer("enola.local.json")
//	loader.EnableValidation(true)
//	cfg, err := loader.Load()
//
// Recognized variables are ENOLA_CATALOG, ENOLA_DATATYPES (comma separated),
// ENOLA_STORE_BACKEND, ENOLA_STORE_SQLITE_PATH, ENOLA_STORE_NATS_URL,
// ENOLA_STORE_BUCKET, ENOLA_PIPELINE_WORKERS and ENOLA_PIPELINE_POLICY.
//
// Files are read defensively: only regular .json files under 10MB that do
// not escape the working directory through "..", nested at most 100 levels.
// Unknown keys are rejected so typos surface as errors.
//
// SafeConfig guards a Config shared between goroutines; Get hands out deep
// copies.
package config
