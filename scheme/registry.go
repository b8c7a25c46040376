package scheme

import (
	"errors"
	"fmt"
	"sort"
)

// Entry binds a primitive adapter to its registry name and descriptor.
type Entry struct {
	Descriptor Descriptor
	Scheme     Scheme
}

// Registry maps names and descriptors to adapters for one purpose.
// It is immutable once built and safe for concurrent use.
type Registry struct {
	purpose  Purpose
	byName   map[string]Entry
	byDesc   map[Descriptor]Entry
	ordering []Descriptor
}

// NewRegistry validates entries and builds a registry for purpose.
func NewRegistry(purpose Purpose, entries ...Entry) (*Registry, error) {
	if !purpose.Valid() {
		return nil, &RegistryError{Purpose: purpose, Err: fmt.Errorf("unknown purpose %d", uint8(purpose))}
	}

	r := &Registry{
		purpose: purpose,
		byName:  make(map[string]Entry, len(entries)),
		byDesc:  make(map[Descriptor]Entry, len(entries)),
	}

	for _, e := range entries {
		if err := r.add(e); err != nil {
			name := ""
			if e.Scheme != nil {
				name = e.Scheme.Name()
			}
			return nil, &RegistryError{Purpose: purpose, Name: name, Err: err}
		}
	}
	return r, nil
}

func (r *Registry) add(e Entry) error {
	if e.Scheme == nil {
		return errors.New("nil scheme")
	}
	name := e.Scheme.Name()
	if name == "" {
		return errors.New("empty scheme name")
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: name %q", ErrDuplicateScheme, name)
	}
	if prev, ok := r.byDesc[e.Descriptor]; ok {
		return fmt.Errorf("%w: descriptor %s already used by %q", ErrDuplicateScheme, e.Descriptor, prev.Scheme.Name())
	}

	switch r.purpose {
	case Signature:
		if _, ok := e.Scheme.(Signer); !ok {
			return fmt.Errorf("%w: %T is not a Signer", ErrPurposeMismatch, e.Scheme)
		}
	case KeyEncapsulation:
		if _, ok := e.Scheme.(KEM); !ok {
			return fmt.Errorf("%w: %T is not a KEM", ErrPurposeMismatch, e.Scheme)
		}
	}

	info := e.Scheme.Info()
	if err := info.PublicKey.Validate(); err != nil {
		return fmt.Errorf("public key: %w", err)
	}
	if err := info.Payload.Validate(); err != nil {
		return fmt.Errorf("payload: %w", err)
	}

	r.byName[name] = e
	r.byDesc[e.Descriptor] = e
	r.ordering = append(r.ordering, e.Descriptor)
	return nil
}

// Purpose returns the purpose this registry serves.
func (r *Registry) Purpose() Purpose {
	return r.purpose
}

// Len returns the number of registered schemes.
func (r *Registry) Len() int {
	return len(r.ordering)
}

// Lookup resolves a registry name.
func (r *Registry) Lookup(name string) (Entry, error) {
	e, ok := r.byName[name]
	if !ok {
		return Entry{}, &UnknownAlgorithmError{Purpose: r.purpose, Name: name}
	}
	return e, nil
}

// Resolve resolves a wire descriptor.
func (r *Registry) Resolve(d Descriptor) (Entry, error) {
	e, ok := r.byDesc[d]
	if !ok {
		return Entry{}, &UnknownAlgorithmError{Purpose: r.purpose, Descriptor: d}
	}
	return e, nil
}

// Info returns the size information for d.
func (r *Registry) Info(d Descriptor) (Info, bool) {
	e, ok := r.byDesc[d]
	if !ok {
		return Info{}, false
	}
	return e.Scheme.Info(), true
}

// PublicKeySize is a lookup function suitable for decoding combined public keys.
func (r *Registry) PublicKeySize(d Descriptor) (SizeInfo, bool) {
	info, ok := r.Info(d)
	return info.PublicKey, ok
}

// PayloadSize is a lookup function suitable for decoding combined signatures
// or ciphertexts.
func (r *Registry) PayloadSize(d Descriptor) (SizeInfo, bool) {
	info, ok := r.Info(d)
	return info.Payload, ok
}

// Signer returns the signature adapter registered under d.
func (r *Registry) Signer(d Descriptor) (Signer, error) {
	e, err := r.Resolve(d)
	if err != nil {
		return nil, err
	}
	s, ok := e.Scheme.(Signer)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPurposeMismatch, e.Scheme.Name())
	}
	return s, nil
}

// KEM returns the KEM adapter registered under d.
func (r *Registry) KEM(d Descriptor) (KEM, error) {
	e, err := r.Resolve(d)
	if err != nil {
		return nil, err
	}
	k, ok := e.Scheme.(KEM)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPurposeMismatch, e.Scheme.Name())
	}
	return k, nil
}

// Names returns the registered names sorted by descriptor.
func (r *Registry) Names() []string {
	descs := make([]Descriptor, len(r.ordering))
	copy(descs, r.ordering)
	sort.Slice(descs, func(i, j int) bool {
		if descs[i].ID != descs[j].ID {
			return descs[i].ID < descs[j].ID
		}
		return descs[i].Config < descs[j].Config
	})

	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = r.byDesc[d].Scheme.Name()
	}
	return names
}

// Entries returns the entries in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.ordering))
	for i, d := range r.ordering {
		out[i] = r.byDesc[d]
	}
	return out
}
