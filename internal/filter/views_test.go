package filter_test

import (
	"reflect"
	"testing"

	"github.com/project-hirewire/go-aggregator/internal/domain"
	"github.com/project-hirewire/go-aggregator/internal/filter"
)

func TestViews_IndependentSpecs(t *testing.T) {
	views := filter.NewViews(filter.DefaultSpec())

	err := views.Update(filter.ViewChart, func(s filter.Spec) filter.Spec {
		return filter.AddSearchTag(s, "golang", filter.TagInclude)
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	list, err := views.Get(filter.ViewList)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(list.SearchTags) != 0 {
		t.Errorf("editing chart view leaked into list view: %v", list.SearchTags)
	}
}

func TestViews_SyncIsOneShotValueCopy(t *testing.T) {
	views := filter.NewViews(filter.DefaultSpec())

	err := views.Update(filter.ViewChart, func(s filter.Spec) filter.Spec {
		s = filter.SetTimeWindow(s, domain.Window7d)
		return filter.AddSearchTag(s, "backend", filter.TagInclude)
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := views.Sync(filter.ViewList, filter.ViewChart); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	chart, _ := views.Get(filter.ViewChart)
	list, _ := views.Get(filter.ViewList)
	if !reflect.DeepEqual(chart, list) {
		t.Fatalf("sync should copy the full spec: %+v vs %+v", chart, list)
	}

	// Later edits to the source must not propagate.
	_ = views.Update(filter.ViewChart, func(s filter.Spec) filter.Spec {
		return filter.AddSearchTag(s, "frontend", filter.TagInclude)
	})
	list, _ = views.Get(filter.ViewList)
	if len(list.SearchTags) != 1 {
		t.Errorf("post-sync edit to source leaked into destination: %v", list.SearchTags)
	}
}

func TestViews_GetReturnsCopy(t *testing.T) {
	views := filter.NewViews(filter.DefaultSpec())
	_ = views.Update(filter.ViewList, func(s filter.Spec) filter.Spec {
		return filter.AddSearchTag(s, "python", filter.TagInclude)
	})

	got, _ := views.Get(filter.ViewList)
	got.SearchTags[0].Mode = filter.TagExclude

	again, _ := views.Get(filter.ViewList)
	if again.SearchTags[0].Mode != filter.TagInclude {
		t.Error("mutating a Get result changed stored view state")
	}
}

func TestViews_UnknownView(t *testing.T) {
	views := filter.NewViews(filter.DefaultSpec())
	if _, err := views.Get(filter.ViewName("sidebar")); err == nil {
		t.Error("Get of unknown view should error")
	}
	if err := views.Sync(filter.ViewList, filter.ViewName("sidebar")); err == nil {
		t.Error("Sync from unknown view should error")
	}
}

func TestParseViewName(t *testing.T) {
	for _, valid := range []string{"chart", "list", "cross-company"} {
		if _, err := filter.ParseViewName(valid); err != nil {
			t.Errorf("ParseViewName(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := filter.ParseViewName("grid"); err == nil {
		t.Error("ParseViewName(\"grid\") should error")
	}
}
