// Package eventbus delivers events to every subscriber whose handler
// signature accepts them.
package eventbus

import (
	stderrors "errors"
	"reflect"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

type EventBus interface {
	Publish(args ...any)
	PublishE(args ...any) error
	Subscribe(handler any)
	Unsubscribe(handler any)
	SubscribersCount() int
}

var (
	ErrNoSubscribers        = errors.New("no matching subscribers")
	ErrInvalidHandlerReturn = errors.New("invalid handler return signature")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type bus struct {
	log      *logrus.Entry
	handlers []reflect.Value
}

func New(log *logrus.Entry) EventBus {
	return &bus{log: log}
}

// MatchSignature reports whether handler can be called with args. Nil args
// match interface and pointer parameters.
func MatchSignature(handler any, args []any) bool {
	t := reflect.TypeOf(handler)
	if t == nil || t.Kind() != reflect.Func || t.NumIn() != len(args) {
		return false
	}
	for i, arg := range args {
		param := t.In(i)
		if arg == nil {
			if param.Kind() != reflect.Interface && param.Kind() != reflect.Ptr {
				return false
			}
			continue
		}
		if !reflect.TypeOf(arg).AssignableTo(param) {
			return false
		}
	}
	return true
}

func values(h reflect.Value, args []any) []reflect.Value {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(h.Type().In(i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}
	return in
}

// call invokes h and converts a panic into an error.
func call(h reflect.Value, in []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("eventbus: handler %s panicked: %v", h.Type(), r)
		}
	}()
	return h.Call(in), nil
}

func (b *bus) matching(args []any) []reflect.Value {
	var out []reflect.Value
	for _, h := range b.handlers {
		if MatchSignature(h.Interface(), args) {
			out = append(out, h)
		}
	}
	return out
}

// Publish calls every matching handler. Panics are logged and do not stop
// delivery to the remaining handlers.
func (b *bus) Publish(args ...any) {
	handlers := b.matching(args)
	if len(handlers) == 0 {
		b.log.WithField("args", args).Warn("eventbus.publish.unhandled")
		return
	}
	for _, h := range handlers {
		if _, err := call(h, values(h, args)); err != nil {
			b.log.WithError(err).Error("eventbus.handler.panicked")
		}
	}
}

// PublishE is Publish for handlers that return an error. All handler errors
// are joined.
func (b *bus) PublishE(args ...any) error {
	handlers := b.matching(args)
	if len(handlers) == 0 {
		return ErrNoSubscribers
	}
	var errs []error
	for _, h := range handlers {
		out, err := call(h, values(h, args))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		switch {
		case len(out) == 0:
		case len(out) != 1 || out[0].Type() != errorType:
			errs = append(errs, errors.Wrapf(ErrInvalidHandlerReturn, "handler %s", h.Type()))
		case !out[0].IsNil():
			errs = append(errs, out[0].Interface().(error))
		}
	}
	return stderrors.Join(errs...)
}

func (b *bus) Subscribe(handler any) {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func {
		panic("eventbus: handler must be a function")
	}
	b.handlers = append(b.handlers, v)
}

// Unsubscribe removes the first subscription of handler.
func (b *bus) Unsubscribe(handler any) {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func {
		return
	}
	for i, h := range b.handlers {
		if h.Pointer() == v.Pointer() && h.Type() == v.Type() {
			b.handlers = append(b.handlers[:i], b.handlers[i+1:]...)
			return
		}
	}
}

func (b *bus) SubscribersCount() int {
	return len(b.handlers)
}
