package vango

import (
	"fmt"
	"reflect"

	"github.com/vango-dev/vango-modal/internal/errors"
)

var (
	mouseEventType    = reflect.TypeOf(MouseEvent{})
	keyboardEventType = reflect.TypeOf(KeyboardEvent{})
)

// CallHandler invokes an event handler with event as its payload.
//
// Supported handlers take no argument, a MouseEvent, a KeyboardEvent or an
// any, including named func types such as modal.CloseFunc. A handler whose
// parameter does not match the payload type gets the zero value. Any other
// signature is not called and yields an E010 error.
func CallHandler(handler any, event any) error {
	switch fn := handler.(type) {
	case func():
		fn()
	case func(MouseEvent):
		e, _ := event.(MouseEvent)
		fn(e)
	case func(KeyboardEvent):
		e, _ := event.(KeyboardEvent)
		fn(e)
	case func(any):
		fn(event)
	default:
		return callReflect(handler, event)
	}
	return nil
}

func callReflect(handler any, event any) error {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func || v.IsNil() || v.Type().IsVariadic() {
		return unsupportedHandler(handler)
	}

	t := v.Type()
	switch t.NumIn() {
	case 0:
		v.Call(nil)
		return nil
	case 1:
		in := t.In(0)
		if in != mouseEventType && in != keyboardEventType && !(in.Kind() == reflect.Interface && in.NumMethod() == 0) {
			return unsupportedHandler(handler)
		}
		arg := reflect.Zero(in)
		if event != nil && reflect.TypeOf(event).AssignableTo(in) {
			arg = reflect.ValueOf(event)
		}
		v.Call([]reflect.Value{arg})
		return nil
	}
	return unsupportedHandler(handler)
}

func unsupportedHandler(handler any) error {
	return errors.New("E010").WithDetail(fmt.Sprintf("cannot call handler of type %T", handler))
}
