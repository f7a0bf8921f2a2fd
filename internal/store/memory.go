package store

import (
	"fmt"
	"maps"
	"sync"
)

// MemoryStore keeps a Document in memory.
type MemoryStore struct {
	mu  sync.RWMutex
	doc Document
}

// NewMemoryStore creates a store seeded with a copy of doc.
func NewMemoryStore(doc Document) *MemoryStore {
	return &MemoryStore{doc: cloneDocument(doc)}
}

func (m *MemoryStore) SubscriptionParameters(subscription int) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return subscriptionParameters(&m.doc, subscription)
}

func (m *MemoryStore) NodeParameters(node string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return nodeParameters(&m.doc, node)
}

func (m *MemoryStore) Configuration(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.doc.Configuration[key]
	return value, ok, nil
}

func (m *MemoryStore) SetConfiguration(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc.Configuration == nil {
		m.doc.Configuration = make(map[string]string)
	}
	m.doc.Configuration[key] = value
	return nil
}

func (m *MemoryStore) DeleteConfiguration(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.doc.Configuration, key)
	return nil
}

// PutNode creates or replaces a node.
func (m *MemoryStore) PutNode(id string, node Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc.Nodes == nil {
		m.doc.Nodes = make(map[string]Node)
	}
	node.Parameters = maps.Clone(node.Parameters)
	m.doc.Nodes[id] = node
}

// PutSubscription creates or replaces a subscription by ID.
func (m *MemoryStore) PutSubscription(sub Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub.Parameters = maps.Clone(sub.Parameters)
	for i := range m.doc.Subscriptions {
		if m.doc.Subscriptions[i].ID == sub.ID {
			m.doc.Subscriptions[i] = sub
			return
		}
	}
	m.doc.Subscriptions = append(m.doc.Subscriptions, sub)
}

func nodeParameters(doc *Document, node string) (map[string]string, error) {
	n, ok := doc.Nodes[node]
	if !ok {
		return nil, fmt.Errorf("node %q: %w", node, ErrNotFound)
	}
	params := maps.Clone(n.Parameters)
	if params == nil {
		params = make(map[string]string)
	}
	return params, nil
}

func subscriptionParameters(doc *Document, subscription int) (map[string]string, error) {
	for _, sub := range doc.Subscriptions {
		if sub.ID != subscription {
			continue
		}
		params, err := nodeParameters(doc, sub.Node)
		if err != nil {
			return nil, fmt.Errorf("subscription %d: %w", subscription, err)
		}
		maps.Copy(params, sub.Parameters)
		return params, nil
	}
	return nil, fmt.Errorf("subscription %d: %w", subscription, ErrNotFound)
}

func cloneDocument(doc Document) Document {
	out := Document{
		Configuration: maps.Clone(doc.Configuration),
	}
	if doc.Nodes != nil {
		out.Nodes = make(map[string]Node, len(doc.Nodes))
		for id, node := range doc.Nodes {
			node.Parameters = maps.Clone(node.Parameters)
			out.Nodes[id] = node
		}
	}
	for _, sub := range doc.Subscriptions {
		sub.Parameters = maps.Clone(sub.Parameters)
		out.Subscriptions = append(out.Subscriptions, sub)
	}
	return out
}
