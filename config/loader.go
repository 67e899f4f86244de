package config

// Loader fills a target struct from some configuration source.
type Loader interface {
	Load(target any) error
}
