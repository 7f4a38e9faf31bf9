package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundingBoxFromLandmarks(t *testing.T) {
	lms := []Landmark{{X: 0.25, Y: 0.5}, {X: 0.5, Y: 0.6}, {X: 0.4, Y: 0.55}}
	box := BoundingBoxFromLandmarks(lms, 200, 100, FaceMargin)
	require.Equal(t, BoundingBox{X1: 30, Y1: 30, X2: 120, Y2: 80}, box)
	require.Equal(t, 90, box.Width())
	require.Equal(t, 50, box.Height())
	require.False(t, box.Empty())
}

func TestBoundingBoxFromLandmarks_ClampsToImage(t *testing.T) {
	lms := []Landmark{{X: 0.01, Y: 0.02}, {X: 0.99, Y: 0.98}}
	box := BoundingBoxFromLandmarks(lms, 100, 100, FaceMargin)
	require.Equal(t, BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100}, box)
}

func TestBoundingBoxFromLandmarks_Truncates(t *testing.T) {
	lms := []Landmark{{X: 0.499, Y: 0.499}}
	box := BoundingBoxFromLandmarks(lms, 100, 100, 0)
	require.Equal(t, BoundingBox{X1: 49, Y1: 49, X2: 49, Y2: 49}, box)
	require.True(t, box.Empty())
}

func TestBoundingBoxFromLandmarks_OutsideImageIsDegenerate(t *testing.T) {
	lms := []Landmark{{X: 1.5, Y: 0.5}, {X: 1.6, Y: 0.6}}
	box := BoundingBoxFromLandmarks(lms, 200, 100, FaceMargin)
	require.True(t, box.Empty())
}

func TestBoundingBoxFromLandmarks_NoLandmarks(t *testing.T) {
	require.True(t, BoundingBoxFromLandmarks(nil, 10, 10, FaceMargin).Empty())
}

func TestBoundingBoxRect(t *testing.T) {
	box := BoundingBox{X1: 1, Y1: 2, X2: 5, Y2: 6}
	require.Equal(t, image.Rect(11, 12, 15, 16), box.Rect(image.Pt(10, 10)))
}
