// Package lang resolves user visible strings by key, component and language.
package lang

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

const Component = "paygw_wallet"

type contextKey struct{}

// WithLanguage stores the negotiated language on the context.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, contextKey{}, tag)
}

// FromContext returns the language stored by WithLanguage, English otherwise.
func FromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(contextKey{}).(language.Tag); ok {
		return tag
	}
	return language.English
}

type Manager struct {
	mu      sync.RWMutex
	tags    []language.Tag
	packs   map[language.Tag]map[string]map[string]string
	matcher language.Matcher
}

// NewManager returns a manager preloaded with the English pack. English is
// the fallback for every lookup.
func NewManager() *Manager {
	m := &Manager{
		packs: make(map[language.Tag]map[string]map[string]string),
	}
	m.AddPack(language.English, Component, english)
	return m
}

func (m *Manager) AddPack(tag language.Tag, component string, strs map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pack, ok := m.packs[tag]
	if !ok {
		pack = make(map[string]map[string]string)
		m.packs[tag] = pack
		m.tags = append(m.tags, tag)
		m.matcher = language.NewMatcher(m.tags)
	}

	if pack[component] == nil {
		pack[component] = make(map[string]string, len(strs))
	}
	for key, value := range strs {
		pack[component][key] = value
	}
}

// Match picks the best installed language for an Accept-Language header.
func (m *Manager) Match(acceptLanguage string) language.Tag {
	m.mu.RLock()
	defer m.mu.RUnlock()

	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return language.English
	}

	_, index, confidence := m.matcher.Match(desired...)
	if confidence == language.No {
		return language.English
	}
	return m.tags[index]
}

// Get resolves key for the language on ctx. a replaces {$a}; a
// map[string]string replaces {$a->name} placeholders. Unknown keys render as
// [[key]].
func (m *Manager) Get(ctx context.Context, key, component string, a any) string {
	m.mu.RLock()
	value, ok := m.lookup(FromContext(ctx), key, component)
	if !ok {
		value, ok = m.lookup(language.English, key, component)
	}
	m.mu.RUnlock()

	if !ok {
		return "[[" + key + "]]"
	}
	return substitute(value, a)
}

func (m *Manager) lookup(tag language.Tag, key, component string) (string, bool) {
	pack, ok := m.packs[tag]
	if !ok {
		return "", false
	}
	value, ok := pack[component][key]
	return value, ok
}

func substitute(value string, a any) string {
	switch args := a.(type) {
	case nil:
		return value
	case map[string]string:
		for name, arg := range args {
			value = strings.ReplaceAll(value, "{$a->"+name+"}", arg)
		}
		return value
	default:
		return strings.ReplaceAll(value, "{$a}", fmt.Sprint(args))
	}
}
