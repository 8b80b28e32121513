package tween_test

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/stipple/pkg/ease"
	"github.com/matzehuels/stipple/pkg/layout"
	"github.com/matzehuels/stipple/pkg/point"
	"github.com/matzehuels/stipple/pkg/sequence"
	"github.com/matzehuels/stipple/pkg/tween"
)

func ExampleDriver() {
	c := layout.Canvas{Width: 600, Height: 600, PointWidth: 4}
	ps, _ := point.New(1000, nil)
	_ = layout.NewPhyllotaxis(c).Apply(ps)

	seq, _ := sequence.New(layout.NewSpiral(c), layout.NewPhyllotaxis(c))
	frames := 0
	clock := tween.NewManual()
	d, err := tween.New(ps, seq, tween.RenderFunc(func(*point.Set) error {
		frames++
		return nil
	}), clock, tween.WithDuration(time.Second), tween.WithEasing(ease.Linear))
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = d.Start(context.Background())

	for range 20 {
		clock.Advance(50 * time.Millisecond)
	}
	fmt.Println(frames, "frames")
	fmt.Println(d.Completed(), "transition done, now heading to", d.Status().Layout)
	// Output:
	// 20 frames
	// 1 transition done, now heading to phyllotaxis
}
