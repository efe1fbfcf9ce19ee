package scene

import (
	"fmt"
	"math"
)

// Shader node types
const (
	NodeEmission   = "ShaderNodeEmission"
	NodeOutput     = "ShaderNodeOutputMaterial"
	NodeGradient   = "ShaderNodeTexGradient"
	NodeColorRamp  = "ShaderNodeValToRGB"
	NodePrincipled = "ShaderNodeBsdfPrincipled"
)

// Color is a linear RGBA colour with components in [0, 1]
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Hex formats the colour as #RRGGBB, ignoring alpha
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// ColorStop is one element of a colour ramp
type ColorStop struct {
	Position float64 `json:"position"`
	Color    Color   `json:"color"`
}

// EdgeRamp is the gradient applied along every edge
var EdgeRamp = []ColorStop{
	{Position: 0, Color: Color{R: 0, G: 0.725, B: 0.506, A: 1}},   // #00B981
	{Position: 0.5, Color: Color{R: 0.455, G: 0.737, B: 0, A: 1}}, // #74BC00
	{Position: 1, Color: Color{R: 1, G: 1, B: 0, A: 1}},           // #FFFF00
}

// EvalRamp linearly interpolates stops at t. Stops must be sorted by
// position; t outside the ramp clamps to the end colours.
func EvalRamp(stops []ColorStop, t float64) Color {
	if len(stops) == 0 {
		return Color{}
	}
	if t <= stops[0].Position {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		lo, hi := stops[i-1], stops[i]
		if t > hi.Position {
			continue
		}
		span := hi.Position - lo.Position
		if span <= 0 {
			return hi.Color
		}
		f := (t - lo.Position) / span
		return Color{
			R: lo.Color.R + (hi.Color.R-lo.Color.R)*f,
			G: lo.Color.G + (hi.Color.G-lo.Color.G)*f,
			B: lo.Color.B + (hi.Color.B-lo.Color.B)*f,
			A: lo.Color.A + (hi.Color.A-lo.Color.A)*f,
		}
	}
	return stops[len(stops)-1].Color
}

// ShaderNode is a node in a material node tree
type ShaderNode struct {
	Name         string             `json:"name"`
	Type         string             `json:"type"`
	Location     [2]float64         `json:"location"`
	Inputs       map[string]float64 `json:"inputs,omitempty"`
	GradientType string             `json:"gradient_type,omitempty"`
	Ramp         []ColorStop        `json:"ramp,omitempty"`
}

// NodeLink connects an output socket to an input socket
type NodeLink struct {
	From       string `json:"from"`
	FromSocket string `json:"from_socket"`
	To         string `json:"to"`
	ToSocket   string `json:"to_socket"`
}

// Material is a named shader node tree
type Material struct {
	Name  string       `json:"name"`
	Nodes []ShaderNode `json:"nodes"`
	Links []NodeLink   `json:"links"`
}

// Node returns the first node of the given type
func (m Material) Node(nodeType string) (ShaderNode, bool) {
	for _, n := range m.Nodes {
		if n.Type == nodeType {
			return n, true
		}
	}
	return ShaderNode{}, false
}

// Emissive reports whether the material emits light, with its strength
func (m Material) Emissive() (float64, bool) {
	n, ok := m.Node(NodeEmission)
	if !ok {
		return 0, false
	}
	return n.Inputs["Strength"], true
}

// BaseColor is the representative diffuse colour: the ramp midpoint for
// gradient materials, white otherwise.
func (m Material) BaseColor() Color {
	if n, ok := m.Node(NodeColorRamp); ok {
		return EvalRamp(n.Ramp, 0.5)
	}
	return Color{R: 1, G: 1, B: 1, A: 1}
}

// EmissiveMaterial is Emission(strength) -> Material Output
func EmissiveMaterial(name string, strength float64) Material {
	return Material{
		Name: name,
		Nodes: []ShaderNode{
			{Name: "Emission", Type: NodeEmission, Location: [2]float64{-300, 300},
				Inputs: map[string]float64{"Strength": strength}},
			{Name: "Material Output", Type: NodeOutput, Location: [2]float64{0, 300}},
		},
		Links: []NodeLink{
			{From: "Emission", FromSocket: "Emission", To: "Material Output", ToSocket: "Surface"},
		},
	}
}

// GradientMaterial is a linear Gradient Texture -> Color Ramp ->
// Principled BSDF -> Material Output chain
func GradientMaterial(name string, ramp []ColorStop) Material {
	return Material{
		Name: name,
		Nodes: []ShaderNode{
			{Name: "Gradient Texture", Type: NodeGradient, Location: [2]float64{-300, 300}, GradientType: "LINEAR"},
			{Name: "Color Ramp", Type: NodeColorRamp, Location: [2]float64{-100, 300},
				Ramp: append([]ColorStop(nil), ramp...)},
			{Name: "Principled BSDF", Type: NodePrincipled, Location: [2]float64{100, 300}},
			{Name: "Material Output", Type: NodeOutput, Location: [2]float64{300, 300}},
		},
		Links: []NodeLink{
			{From: "Gradient Texture", FromSocket: "Color", To: "Color Ramp", ToSocket: "Fac"},
			{From: "Color Ramp", FromSocket: "Color", To: "Principled BSDF", ToSocket: "Base Color"},
			{From: "Principled BSDF", FromSocket: "BSDF", To: "Material Output", ToSocket: "Surface"},
		},
	}
}
