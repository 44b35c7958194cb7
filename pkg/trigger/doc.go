// Package trigger decides when a scheduled send becomes due.
//
// A Policy describes the rule: a fixed repeating interval ([Every]), a single absolute instant
// ([OnceAt], [ParseAt]) or a calendar schedule ([Daily], [ParseCron]). An [Evaluator] turns a
// policy into due events by occupying the calling goroutine with a cancellable wait loop and
// invoking a handler once per event.
//
// # Usage
//
//	policy, err := trigger.ParseInterval("30")
//	if err != nil {
//		return err
//	}
//
//	ev, err := trigger.New(policy, trigger.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	// Blocks until ctx is cancelled (Interval, Recurring) or the single event fired (At).
//	err = ev.Run(ctx, func(ctx context.Context, e trigger.Event) error {
//		return m.Dispatch(ctx, job)
//	})
//
// # Semantics
//
//   - Interval: the first event fires N seconds after Run starts, never immediately. Each next
//     event is due N seconds after the previous one fired.
//   - At: fires exactly once, as soon as the wall clock reaches the target. A target already in
//     the past fires on the first check. Run then returns nil.
//   - Recurring: fires at every schedule instant (e.g. every day at 09:00:00).
//
// The wall clock is re-read at least once per resolution (1 second by default), so adjustments
// to the system clock are picked up the same way a polling loop would.
//
// # Cancellation
//
// Cancelling the context passed to Run stops all future events and Run returns the context
// error. The handler receives a context that is detached from cancellation: a send that is
// already in progress runs to completion.
//
// # Errors
//
// Handler errors never stop the evaluator. They are logged and passed to the hook installed
// with [WithErrorHandler].
//
//   - ErrNoPolicy: nil policy passed to New
//   - ErrNoHandler: nil handler passed to Run
//   - ErrInvalidInterval: interval is not a positive number of whole seconds
//   - ErrInvalidTime: date or time does not form a valid calendar instant
//   - ErrInvalidCron: schedule expression cannot be parsed
package trigger
