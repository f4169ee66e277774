package config

// These tests verify that we can properly configure the metadata wizard
// service with YAML input.
import (
	"fmt"
	"os"

	"github.com/stretchr/testify/assert"
	"testing"
)

// a valid service config entry
const VALID_SERVICE string = `
service:
  port: 8081
  max_connections: 50
  session_ttl: 1800
  poll_interval: 30000
`

// a valid vocabulary config entry
const VALID_VOCABULARY string = `
vocabulary:
  base: https://openminds.ebrains.eu/vocab/
  instances: https://kg.ebrains.eu/api/instances/
`

// tests whether config.Init falls back to default values for blank input
func TestInitAcceptsBlankInput(t *testing.T) {
	b := []byte("")
	err := Init(b)
	assert.Nil(t, err, "Blank config didn't fall back to defaults.")
	assert.Equal(t, 8080, Service.Port)
	assert.Equal(t, 100, Service.MaxConnections)
	assert.Equal(t, 3600, Service.SessionTtl)
	assert.Equal(t, "https://openminds.ebrains.eu/vocab/", Vocabulary.Base)
}

// tests whether config.Init reports an error for an invalid port
func TestInitRejectsBadPort(t *testing.T) {
	yaml := "service:\n  port: -1\n\n" + VALID_VOCABULARY
	b := []byte(yaml)
	err := Init(b)
	assert.NotNil(t, err, "Config with bad port didn't trigger an error.")
	yaml = "service:\n  port: 1000000\n\n" + VALID_VOCABULARY
	b = []byte(yaml)
	err = Init(b)
	assert.NotNil(t, err, "Config with bad port didn't trigger an error.")
}

// tests whether config.Init reports an error for an invalid max number of
// connections
func TestInitRejectsBadMaxConnections(t *testing.T) {
	yaml := "service:\n  max_connections: 0\n\n" + VALID_VOCABULARY
	b := []byte(yaml)
	err := Init(b)
	assert.NotNil(t, err, "Config with bad max_connections didn't trigger an error.")
}

// tests whether config.Init reports an error for an invalid session TTL
func TestInitRejectsBadSessionTtl(t *testing.T) {
	yaml := "service:\n  session_ttl: -10\n\n" + VALID_VOCABULARY
	b := []byte(yaml)
	err := Init(b)
	assert.NotNil(t, err, "Config with bad session_ttl didn't trigger an error.")
}

// tests whether config.Init rejects a configuration with a blank vocabulary
// base IRI
func TestInitRejectsBlankVocabularyBase(t *testing.T) {
	yaml := VALID_SERVICE + "vocabulary:\n  base: \"\"\n"
	b := []byte(yaml)
	err := Init(b)
	assert.NotNil(t, err, "Config with blank vocabulary base didn't trigger an error.")
}

// tests whether config.Init properly expands environment variables
func TestInitExpandsEnvironmentVariables(t *testing.T) {
	os.Setenv("MDW_TEST_VOCAB_BASE", "https://example.org/vocab/")
	defer os.Unsetenv("MDW_TEST_VOCAB_BASE")
	yaml := VALID_SERVICE + "vocabulary:\n  base: ${MDW_TEST_VOCAB_BASE}\n"
	b := []byte(yaml)
	err := Init(b)
	assert.Nil(t, err, "Config with environment variable produced an error.")
	assert.Equal(t, "https://example.org/vocab/", Vocabulary.Base)
}

// Tests whether config.Init properly initializes its globals for valid input.
func TestInitProperlySetsGlobals(t *testing.T) {
	yaml := VALID_SERVICE + VALID_VOCABULARY
	b := []byte(yaml)
	err := Init(b)
	assert.Nil(t, err, fmt.Sprintf("Valid YAML input produced an error: %s", err))

	// check data
	assert.Equal(t, 8081, Service.Port)
	assert.Equal(t, 50, Service.MaxConnections)
	assert.Equal(t, 1800, Service.SessionTtl)
	assert.Equal(t, 30000, Service.PollInterval)
	assert.Equal(t, "https://kg.ebrains.eu/api/instances/", Vocabulary.Instances)
}
