package proforma

import (
	"fmt"
	"math"
)

// ParkingConfig is the physical parking strategy of a hypothetical building
type ParkingConfig string

const (
	ParkingSurface     ParkingConfig = "surface"
	ParkingDeck        ParkingConfig = "deck"
	ParkingUnderground ParkingConfig = "underground"
)

// maxSurfaceStories is the tallest footprint-basis building surface parking can serve
const maxSurfaceStories = 5.0

// parkingLayout derives the geometry one parking configuration imposes on a building
type parkingLayout interface {
	// bulk turns parcel size x far into buildable floor area
	bulk(grossBulk, weightedRate float64) float64
	// stories on a footprint basis, before parcel coverage; NaN when infeasible
	stories(bulk, stalls, parcelSize float64) float64
	// area is built parking floor area, separate from occupiable area
	area(stalls float64) float64
	// cost of building the stalls
	cost(stalls float64) float64
}

type parkingParams struct {
	sqftPerStall float64
	costPerSqft  float64
	sqftPerRate  float64
}

func (s parkingParams) bulk(grossBulk, _ float64) float64 {
	return grossBulk
}

func (s parkingParams) area(stalls float64) float64 {
	return stalls * s.sqftPerStall
}

func (s parkingParams) cost(stalls float64) float64 {
	return s.costPerSqft * stalls * s.sqftPerStall
}

// surfaceParking takes stalls out of the footprint and builds no parking floor area
type surfaceParking struct{ parkingParams }

func (p surfaceParking) stories(bulk, stalls, parcelSize float64) float64 {
	stories := bulk / (parcelSize - stalls*p.sqftPerStall)
	if stories < 0 || stories > maxSurfaceStories {
		return math.NaN()
	}
	return stories
}

func (p surfaceParking) area(float64) float64 {
	return 0
}

// deckParking stacks stalls in the building envelope
type deckParking struct{ parkingParams }

// bulk shrinks the building so it plus its own deck fits the far. This is a
// one-step approximation of the self-referential fixed point, kept as is.
func (p deckParking) bulk(grossBulk, weightedRate float64) float64 {
	return grossBulk / (1.0 + weightedRate*p.sqftPerStall/p.sqftPerRate)
}

func (p deckParking) stories(bulk, stalls, parcelSize float64) float64 {
	return (bulk + stalls*p.sqftPerStall) / parcelSize
}

// undergroundParking sits below grade and adds no stories
type undergroundParking struct{ parkingParams }

func (p undergroundParking) stories(bulk, _, parcelSize float64) float64 {
	return bulk / parcelSize
}

func newParkingLayout(pc ParkingConfig, params parkingParams) (parkingLayout, error) {
	switch pc {
	case ParkingSurface:
		return surfaceParking{params}, nil
	case ParkingDeck:
		return deckParking{params}, nil
	case ParkingUnderground:
		return undergroundParking{params}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownParkingConfig, pc)
	}
}
