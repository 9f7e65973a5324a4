package runner

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

type PipeItem struct {
	Results map[string]any
	Failed  error
}

func NewPipeItem() *PipeItem {
	return &PipeItem{Results: make(map[string]any)}
}

func (i *PipeItem) Fail(err error) { i.Failed = err }

func StepSetValue(key string, val any) Step[*PipeItem] {
	return func(_ context.Context, item *PipeItem) error {
		item.Results[key] = val
		return nil
	}
}

func StepError(_ context.Context, _ *PipeItem) error {
	return errors.New("mock step failed")
}

func TestPipelineProcess(t *testing.T) {
	tests := []struct {
		name       string
		stages     []Stage[*PipeItem]
		expected   map[string]any
		wantFailed bool
	}{
		{
			name:     "single step sets value",
			stages:   []Stage[*PipeItem]{NewStage(StepSetValue("foo", "bar"))},
			expected: map[string]any{"foo": "bar"},
		},
		{
			name: "two steps in one stage run in parallel",
			stages: []Stage[*PipeItem]{
				NewStage(
					StepSetValue("x", 1),
					StepSetValue("y", 2),
				),
			},
			expected: map[string]any{"x": 1, "y": 2},
		},
		{
			name: "multi-stage sequential dependency",
			stages: []Stage[*PipeItem]{
				NewStage(StepSetValue("a", "first")),
				NewStage(StepSetValue("b", "second")),
			},
			expected: map[string]any{"a": "first", "b": "second"},
		},
		{
			name: "required stage error skips later stages",
			stages: []Stage[*PipeItem]{
				NewStage(StepError),
				NewStage(StepSetValue("ok", true)),
			},
			expected:   map[string]any{},
			wantFailed: true,
		},
		{
			name: "optional stage error does not fail the item",
			stages: []Stage[*PipeItem]{
				NewOptionalStage(StepError),
				NewStage(StepSetValue("ok", true)),
			},
			expected: map[string]any{"ok": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			item := NewPipeItem()
			in := make(chan *PipeItem, 1)
			in <- item
			close(in)

			p := NewPipeline(tt.stages...)
			for range p.Process(ctx, in) {
			}

			if !reflect.DeepEqual(item.Results, tt.expected) {
				t.Errorf("got %+v, expected %+v", item.Results, tt.expected)
			}
			if tt.wantFailed && item.Failed == nil {
				t.Error("expected the item to be marked failed")
			}
			if !tt.wantFailed && item.Failed != nil {
				t.Errorf("unexpected failure: %v", item.Failed)
			}
		})
	}
}

func TestPipelineCancelledPassThrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	first, second := NewPipeItem(), NewPipeItem()
	in := make(chan *PipeItem, 2)
	in <- first
	in <- second
	close(in)

	p := NewPipeline(NewStage(StepSetValue("touched", true)))

	var emitted int
	for range p.Process(ctx, in) {
		emitted++
	}

	if emitted != 2 {
		t.Fatalf("expected both items emitted, got %d", emitted)
	}
	for i, item := range []*PipeItem{first, second} {
		if len(item.Results) != 0 {
			t.Errorf("item %d was processed after cancellation: %+v", i, item.Results)
		}
		if item.Failed != nil {
			t.Errorf("item %d was failed after cancellation: %v", i, item.Failed)
		}
	}
}
