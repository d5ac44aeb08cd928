package config

import "time"

// AnswersFile is the default name for a saved configuration.
const AnswersFile = "fastapi-configurator.yml"

// AnswersVersion is the current answers file format.
const AnswersVersion = 1

const DefaultBundleURL = "https://template.vstorm.co/"
const DefaultTimeout = 30 * time.Second
const DefaultOutputDir = "."

// EnvPrefix namespaces every settings environment variable.
const EnvPrefix = "FASTAPI_CONFIGURATOR"
