package store

import "errors"

// Store exposes the host framework data the plugin reads: subscription and
// node parameters, and platform configuration values.
type Store interface {
	// SubscriptionParameters returns the node parameters overlaid with the subscription's own.
	SubscriptionParameters(subscription int) (map[string]string, error)

	// NodeParameters returns the parameters attached to a service node.
	NodeParameters(node string) (map[string]string, error)

	// Configuration returns a platform configuration value and whether it is set.
	Configuration(key string) (string, bool, error)

	// SetConfiguration creates or replaces a platform configuration value.
	SetConfiguration(key, value string) error

	// DeleteConfiguration removes a platform configuration value.
	DeleteConfiguration(key string) error
}

// Document is the persisted shape of a store.
type Document struct {
	Configuration map[string]string `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Nodes         map[string]Node   `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Subscriptions []Subscription    `json:"subscriptions,omitempty" yaml:"subscriptions,omitempty"`
}

// Node is a configured service instance, e.g. one Git server.
type Node struct {
	Name       string            `json:"name,omitempty" yaml:"name,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Subscription attaches a project to a node with its own parameters.
type Subscription struct {
	ID         int               `json:"id" yaml:"id"`
	Project    string            `json:"project,omitempty" yaml:"project,omitempty"`
	Node       string            `json:"node" yaml:"node"`
	Parameters map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

var (
	// ErrNotFound indicates that a requested node or subscription does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrCorrupt indicates that a persisted document could not be decoded.
	ErrCorrupt = errors.New("store: corrupt data")
)

// Logger captures the structured logging surface the store relies on.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
