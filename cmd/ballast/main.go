// Command ballast runs the interactive viewer: it builds one of the built-in
// scenes, steps the simulation from the frame loop and draws every body as a
// colored cube.
//
// Usage:
//
//	ballast [scene]
//
// where scene is an integer in [0,8): single box, slide, small pile, high
// pile, big pile, stack, combo, tall stack. Anything else falls back to the
// small pile.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtholl/ballast"
	"github.com/dtholl/ballast/body"
	"github.com/dtholl/ballast/scene"
)

const frameDumpInterval = 3

func main() {
	prefs := loadPrefs()

	index := -1
	if len(os.Args) > 1 {
		if v, err := strconv.Atoi(os.Args[1]); err == nil {
			index = v
		}
	}

	sys := ballast.NewSystem(time.Now().UnixNano())
	for _, b := range scene.Build(index) {
		sys.AddBody(b)
	}

	run(sys, prefs)
}

func run(sys *ballast.System, prefs Prefs) {
	rl.InitWindow(int32(prefs.Width), int32(prefs.Height), "Rigid Bodies!")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(prefs.TargetFPS))

	camera := rl.Camera3D{
		Position:   rl.NewVector3(0, 10, -10),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	frame := 0
	fpsFrames := 0
	lastFPS := time.Now()
	lastReset := time.Now()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			sys.Reset()
		}
		if prefs.ResetSeconds > 0 && time.Since(lastReset) > time.Duration(prefs.ResetSeconds)*time.Second {
			sys.Reset()
			lastReset = time.Now()
		}

		sys.Step(ballast.DefaultDt)

		rl.UpdateCamera(&camera, rl.CameraOrbital)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		rl.BeginMode3D(camera)
		for _, b := range sys.Bodies() {
			drawBody(b)
		}
		rl.EndMode3D()
		rl.EndDrawing()

		if prefs.DumpFrames && frame%frameDumpInterval == 0 {
			name := fmt.Sprintf("img%05d.png", frame/frameDumpInterval)
			rl.TakeScreenshot(name)
			fmt.Printf("Dumped %s.\n", name)
		}
		frame++
		fpsFrames++

		if elapsed := time.Since(lastFPS); elapsed > 3*time.Second {
			fmt.Printf("fps: %g\n", float64(fpsFrames)/elapsed.Seconds())
			lastFPS = time.Now()
			fpsFrames = 0
		}
	}
}

func drawBody(b *body.Body) {
	size := b.Shape.Size()
	axis, angle := axisAngle(b.Orientation)

	rl.PushMatrix()
	rl.Translatef(float32(b.Position.X()), float32(b.Position.Y()), float32(b.Position.Z()))
	rl.Rotatef(float32(angle*180/math.Pi), float32(axis.X()), float32(axis.Y()), float32(axis.Z()))

	color := rl.NewColor(
		uint8(b.Color.X()*255),
		uint8(b.Color.Y()*255),
		uint8(b.Color.Z()*255),
		255,
	)
	rl.DrawCube(rl.NewVector3(0, 0, 0), float32(size.X()), float32(size.Y()), float32(size.Z()), color)
	rl.DrawCubeWires(rl.NewVector3(0, 0, 0), float32(size.X()), float32(size.Y()), float32(size.Z()), rl.DarkGray)
	rl.PopMatrix()
}

// axisAngle converts a unit quaternion to an axis and an angle in radians.
func axisAngle(q mgl64.Quat) (mgl64.Vec3, float64) {
	w := q.W
	if w > 1 {
		w = 1
	} else if w < -1 {
		w = -1
	}
	angle := 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return mgl64.Vec3{0, 1, 0}, 0
	}
	return q.V.Mul(1 / s), angle
}
