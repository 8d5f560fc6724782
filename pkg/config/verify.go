package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema jsonschema.Schema
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for comparison with schema properties
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// schema generated from an older config may miss sections, report them
	if def, ok := schema.Definitions["Config"]; ok && def.Properties != nil {
		var missing []string
		for key := range configMap {
			if _, found := def.Properties.Get(key); !found {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return fmt.Errorf("schema has no properties %v, regenerate schema.json", missing)
		}
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	for i, f := range cfg.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feeds[%d].url is required", i)
		}
	}

	// check page scrape config if enabled
	if cfg.Images.PageScrape.Enabled {
		if cfg.Images.PageScrape.Pattern == "" {
			return fmt.Errorf("images.page_scrape.pattern is required when page scrape is enabled")
		}
		if cfg.Images.PageScrape.MaxPages < 1 {
			return fmt.Errorf("images.page_scrape.max_pages must be positive when page scrape is enabled")
		}
	}

	if cfg.Cache.Backend == "redis" && cfg.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required for redis backend")
	}

	if cfg.LLM.Enabled && cfg.LLM.MaxTags < 1 {
		return fmt.Errorf("llm.max_tags must be positive when llm is enabled")
	}

	return nil
}

// GenerateSchema reflects Config into a JSON schema. Only fields tagged
// with jsonschema:"required" end up in required lists.
func GenerateSchema() (*jsonschema.Schema, error) {
	r := &jsonschema.Reflector{RequiredFromJSONSchemaTags: true}
	return r.Reflect(&Config{}), nil
}
