package book

import (
	"fmt"
	"math"
	"strings"
)

// Direction is the reading direction of a book.
type Direction int

const (
	LTR Direction = iota
	RTL
)

// ParseDirection accepts "ltr" or "rtl" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltr", "":
		return LTR, nil
	case "rtl":
		return RTL, nil
	}
	return LTR, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// sign is +1 for ltr and -1 for rtl. Every gesture and pose formula is
// multiplied by it.
func (d Direction) sign() float64 {
	if d == RTL {
		return -1
	}
	return 1
}

// Anchor is the vertical edge of a face that stays fixed while it turns.
type Anchor int

const (
	AnchorLeft Anchor = iota
	AnchorRight
)

func (a Anchor) opposite() Anchor {
	if a == AnchorLeft {
		return AnchorRight
	}
	return AnchorLeft
}

// Pose is the visual state of one face. A face is drawn in its leaf's
// base slot shifted by Offset leaf widths, then scaled horizontally by
// ScaleX about its anchor edge.
type Pose struct {
	// Angle is the rotation about the spine in degrees.
	Angle float64
	// Mirror is 1 or -1.
	Mirror float64
	// Offset is a horizontal shift in leaf widths.
	Offset float64
	Anchor Anchor
	// Z is the stacking order, higher is in front.
	Z int
}

// ScaleX is the horizontal scale a 2D surface applies to draw the pose:
// the rotation projected on the page plane, times the mirror.
func (p Pose) ScaleX() float64 {
	return p.Mirror * math.Cos(p.Angle*math.Pi/180)
}

// FrontPose is the pose of the odd (front) face at flip position p.
//
// Angle and mirror both jump at p = 0.5. The jumps cancel in ScaleX, so
// the face appears to keep rotating while the surface is really showing
// the mirrored side of the same texture.
func FrontPose(p float64, dir Direction) Pose {
	s := dir.sign()
	pose := Pose{Offset: s, Anchor: frontAnchor(dir)}
	if p > 0.5 {
		pose.Angle = s * (180 - 180*p)
		pose.Mirror = -1
	} else {
		pose.Angle = s * (-180 * p)
		pose.Mirror = 1
	}
	return pose
}

// BackPose is the pose of the even (back) face at flip position p.
func BackPose(p float64, dir Direction) Pose {
	s := dir.sign()
	pose := Pose{Anchor: frontAnchor(dir).opposite()}
	if p < 0.5 {
		pose.Angle = s * (-180 * p)
		pose.Mirror = -1
	} else {
		pose.Angle = s * (180 - 180*p)
		pose.Mirror = 1
	}
	return pose
}

// RestingFrontPose is the closed-leaf pose of a front face: moved next
// to the spine, not rotated, not mirrored.
func RestingFrontPose(dir Direction, pageIndex, totalPages int) Pose {
	pose := FrontPose(0, dir)
	pose.Z = restingZ(pageIndex, totalPages)
	return pose
}

// RestingBackPose is the closed-leaf pose of a back face: mirrored in
// the base slot, behind its front.
func RestingBackPose(dir Direction, pageIndex, totalPages int) Pose {
	pose := BackPose(0, dir)
	pose.Z = restingZ(pageIndex, totalPages)
	return pose
}

func frontAnchor(dir Direction) Anchor {
	if dir == RTL {
		return AnchorRight
	}
	return AnchorLeft
}

// LeafPoses returns the poses of both faces of leaf index at flip
// position p, stacking order included.
func LeafPoses(p float64, dir Direction, index, totalPages int) (front, back Pose) {
	front = FrontPose(p, dir)
	front.Z = faceZ(p, index*2, totalPages)
	back = BackPose(p, dir)
	back.Z = faceZ(p, index*2+1, totalPages)
	return front, back
}

// restingZ puts earlier pages on top.
func restingZ(pageIndex, totalPages int) int {
	return totalPages - pageIndex
}

// faceZ is the stacking order of a face on a leaf at position p. Past
// the midpoint the stack reverses so the turned pages pile up in order.
func faceZ(p float64, pageIndex, totalPages int) int {
	if p > 0.5 {
		return pageIndex
	}
	return totalPages - pageIndex
}
