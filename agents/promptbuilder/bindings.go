/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import "fmt"

type binding interface {
	value() (string, error)
}

type unboundBinding struct {
	name string
}

func (u *unboundBinding) value() (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", u.name)
}

type textBinding struct {
	val string
}

func (t *textBinding) value() (string, error) {
	return t.val, nil
}

// existsAndUnbound reports an error unless name is a placeholder of the
// template that has not been bound yet.
func existsAndUnbound(bindings map[string]binding, name string) error {
	b, ok := bindings[name]
	if !ok {
		return fmt.Errorf("binding %q not found in template", name)
	}
	if _, unbound := b.(*unboundBinding); !unbound {
		return fmt.Errorf("binding %q already bound", name)
	}
	return nil
}
