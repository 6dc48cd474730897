// Package observable provides typed change notification.
//
// Notifier is a subscriber list for events of one type. Value is a holder
// for a single comparable value that notifies its observers whenever the
// value actually changes:
//
//	v := observable.NewValue("paragraph")
//	sub := v.Subscribe(func(c observable.Change[string]) {
//	    fmt.Println(c.Old, "->", c.New)
//	})
//	defer sub.Unsubscribe()
//
//	v.Set("heading1") // prints "paragraph -> heading1"
//	v.Set("heading1") // no change, no notification
//
// Observers are called synchronously, outside the internal lock, in
// subscription order.
package observable
