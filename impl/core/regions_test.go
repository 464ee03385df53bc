package core

import (
	"context"
	"errors"
	"testing"

	"azurepricing/entity"
)

func regionItems() []entity.RetailPrice {
	return []entity.RetailPrice{
		{SkuName: "D2s v3", ArmRegionName: "eastus", Location: "US East", RetailPrice: 0.096, UnitOfMeasure: "1 Hour"},
		{SkuName: "D2s v3", ArmRegionName: "eastus", Location: "US East", RetailPrice: 0.188, UnitOfMeasure: "1 Hour"},
		{SkuName: "D2s v3 Spot", ArmRegionName: "eastus", Location: "US East", RetailPrice: 0.012, UnitOfMeasure: "1 Hour"},
		{SkuName: "D2s v3 Low Priority", ArmRegionName: "eastus", Location: "US East", RetailPrice: 0.01, UnitOfMeasure: "1 Hour"},
		{SkuName: "D2s v3", ArmRegionName: "westeurope", Location: "EU West", RetailPrice: 0.12, UnitOfMeasure: "1 Hour"},
		{SkuName: "D2s v3", ArmRegionName: "centralindia", Location: "IN Central", RetailPrice: 0.08, UnitOfMeasure: "1 Hour"},
		{SkuName: "D2s v3", ArmRegionName: "", RetailPrice: 0.01},
	}
}

func TestRecommendRegions(t *testing.T) {
	c := newTestCore(&fakePrices{fn: items(regionItems()...)})

	got, err := c.RecommendRegions(context.Background(), "Virtual Machines", "D2s v3", 2, "")
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalRegionsFound != 3 || got.ShowingTop != 2 || len(got.Recommendations) != 2 {
		t.Fatalf("RecommendRegions() = %+v", got)
	}

	first, second := got.Recommendations[0], got.Recommendations[1]
	if first.Rank != 1 || first.Region != "centralindia" || first.SavingsVsMostExpensive != 33.33 {
		t.Errorf("first = %+v", first)
	}
	if second.Region != "eastus" || second.RetailPrice != 0.096 || second.SavingsVsMostExpensive != 20 {
		t.Errorf("second = %+v", second)
	}
	if second.SpotPrice == nil || *second.SpotPrice != 0.012 {
		t.Errorf("eastus spot price = %v", second.SpotPrice)
	}
	if first.SpotPrice != nil {
		t.Error("centralindia has no spot price")
	}
	if got.Summary.CheapestRegion != "centralindia" || got.Summary.MostExpensiveRegion != "westeurope" {
		t.Errorf("Summary = %+v", got.Summary)
	}
}

func TestRecommendRegions_DefaultTop(t *testing.T) {
	c := newTestCore(&fakePrices{fn: items(regionItems()...)})
	got, err := c.RecommendRegions(context.Background(), "Virtual Machines", "D2s v3", 0, "USD")
	if err != nil {
		t.Fatal(err)
	}
	if got.ShowingTop != 3 {
		t.Errorf("ShowingTop = %d, want 3", got.ShowingTop)
	}
}

func TestRecommendRegions_Errors(t *testing.T) {
	c := newTestCore(&fakePrices{fn: items()})
	if _, err := c.RecommendRegions(context.Background(), "Virtual Machines", "", 5, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := c.RecommendRegions(context.Background(), "Virtual Machines", "Z9", 5, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
