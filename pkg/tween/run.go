package tween

import "context"

// Run starts d and blocks until ctx is done or a tick fails, then stops the
// clock. It returns the failure, or nil on cancellation.
func Run(ctx context.Context, d *Driver) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	err := d.Wait(ctx)
	d.Stop()
	return err
}
