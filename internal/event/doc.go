// Package event is the publish channel for triggered actions. Delivery is
// synchronous and inline with dispatch: there is no queue, no worker and no
// background goroutine, matching the core's single-threaded cooperative
// model. Subscriptions are handles that must be cancelled to avoid leaked
// callbacks when panels or controllers are torn down.
package event
