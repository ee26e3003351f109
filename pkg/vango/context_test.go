package vango

import (
	stderrors "errors"
	"testing"

	"github.com/vango-dev/vango-modal/internal/errors"
)

func TestContextProviderAndUse(t *testing.T) {
	theme := CreateContext("light")
	root := NewOwner(nil)
	child := NewOwner(root)

	WithOwner(root, func() {
		node := theme.Provider("dark", "child")
		if len(node.Children) != 1 {
			t.Errorf("Provider children = %d, want 1", len(node.Children))
		}
	})

	WithOwner(child, func() {
		if got := theme.Use(); got != "dark" {
			t.Errorf("Use() = %q, want dark", got)
		}
	})
}

func TestContextDefaultWithoutProvider(t *testing.T) {
	theme := CreateContext("light")

	if got := theme.Use(); got != "light" {
		t.Errorf("Use() without owner = %q", got)
	}

	WithOwner(NewOwner(nil), func() {
		if _, ok := theme.Lookup(); ok {
			t.Error("Lookup should report missing provider")
		}
		if got := theme.Use(); got != "light" {
			t.Errorf("Use() = %q, want default", got)
		}
	})
}

func TestContextKeysAreDistinct(t *testing.T) {
	a := CreateContext(0)
	b := CreateContext(0)

	WithOwner(NewOwner(nil), func() {
		a.Provide(1)
		if _, ok := b.Lookup(); ok {
			t.Error("contexts with the same type must not share values")
		}
	})
}

func TestContextMustUsePanics(t *testing.T) {
	user := CreateContext[*string](nil).Named("UserContext")

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("recover() = %v, want error", r)
		}
		if !stderrors.Is(err, errors.New("E201")) {
			t.Errorf("panic error = %v, want E201", err)
		}
	}()

	WithOwner(NewOwner(nil), func() {
		user.MustUse()
	})
}

func TestSetGetContext(t *testing.T) {
	if GetContext("k") != nil {
		t.Error("GetContext outside owner should be nil")
	}
	WithOwner(NewOwner(nil), func() {
		SetContext("k", "v")
		if GetContext("k") != "v" {
			t.Error("GetContext should return provided value")
		}
	})
}

func TestWithCtx(t *testing.T) {
	if UseCtx() != nil {
		t.Fatal("UseCtx should be nil outside a host")
	}
	WithCtx("session", func() {
		if UseCtx() != "session" {
			t.Error("UseCtx should return host ctx")
		}
	})
	if UseCtx() != nil {
		t.Error("ctx should be restored")
	}
}
