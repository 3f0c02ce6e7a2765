package config

import (
	"fmt"
	"time"
)

const (
	DEFAULT_GRAPH_URL     = "https://graph.facebook.com"
	DEFAULT_GRAPH_VERSION = "v17.0"
	DEFAULT_PLATFORM      = "messenger"
	DEFAULT_PAGE_SIZE     = 25
	DEFAULT_MAX_MESSAGES  = 100
	DEFAULT_TIMEOUT       = 20 * time.Second
	DEFAULT_OUTPUT        = "facebook_messages.json"
	DEFAULT_FORMAT        = "json"
	DEFAULT_PREVIEW       = "none"
	DEFAULT_LOG_LEVEL     = "info"
	DEFAULT_LOG_FORMAT    = "text"
	DEFAULT_DOTENV        = ".env"

	ENV_PREFIX = "MSGDUMP"

	// Unprefixed, shared with the rest of the page tooling.
	ENV_OWN_ID         = "MESSENGER_ID"
	ENV_OTHER_PARTY_ID = "TYLR_ID"
	ENV_ACCESS_TOKEN   = "PAGE_ACCESS_TOKEN"
	ENV_OPENAI_API_KEY = "OPENAI_API_KEY"

	ENV_GRAPH_URL     = "GRAPH_URL"
	ENV_GRAPH_VERSION = "GRAPH_VERSION"
	ENV_PLATFORM      = "PLATFORM"
	ENV_PAGE_SIZE     = "PAGE_SIZE"
	ENV_MAX_MESSAGES  = "MAX_MESSAGES"
	ENV_TIMEOUT       = "TIMEOUT"
	ENV_OUTPUT        = "OUTPUT"
	ENV_FORMAT        = "FORMAT"
	ENV_PREVIEW       = "PREVIEW"
	ENV_UPLOAD        = "UPLOAD"
	ENV_LOG_LEVEL     = "LOG_LEVEL"
	ENV_LOG_FORMAT    = "LOG_FORMAT"
)

func GetEnvWithPrefix(env string) string {
	return fmt.Sprintf("%s_%s", ENV_PREFIX, env)
}
