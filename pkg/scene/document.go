package scene

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-graphscene/pkg/geom"
)

// snappyMagic opens every snappy framed stream
var snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")

// Document is the serialized form of a scene
type Document struct {
	Version     int                  `json:"version"`
	SceneID     string               `json:"scene_id"`
	Settings    Settings             `json:"settings"`
	Collections []DocumentCollection `json:"collections"`
	Materials   []Material           `json:"materials"`
	Points      []DocumentPoint      `json:"points"`
	Edges       []DocumentEdge       `json:"edges"`
	Stats       Stats                `json:"stats"`
}

// DocumentCollection lists object names in a collection
type DocumentCollection struct {
	Name    string   `json:"name"`
	Parent  string   `json:"parent,omitempty"`
	Objects []string `json:"objects"`
}

// DocumentPoint is a serialized point object
type DocumentPoint struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	Position   geom.Vec3 `json:"position"`
	Material   string    `json:"material"`
	Collection string    `json:"collection"`
}

// DocumentEdge is a serialized curved edge
type DocumentEdge struct {
	ID         uint64     `json:"id"`
	Name       string     `json:"name"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	Curve      geom.Curve `json:"curve"`
	Material   string     `json:"material"`
	Collection string     `json:"collection"`
}

// Document snapshots the scene
func (s *Scene) Document() *Document {
	doc := &Document{
		Version:   DocumentVersion,
		SceneID:   s.id.String(),
		Settings:  s.settings,
		Materials: s.Materials(),
		Stats:     s.Stats(),
	}

	for _, c := range []*Collection{s.root, s.target} {
		dc := DocumentCollection{Name: c.Name, Objects: make([]string, 0, len(c.Objects))}
		if c != s.root {
			dc.Parent = s.root.Name
		}
		for _, id := range c.Objects {
			dc.Objects = append(dc.Objects, s.objects[id].Name)
		}
		doc.Collections = append(doc.Collections, dc)
	}

	doc.Points = []DocumentPoint{}
	doc.Edges = []DocumentEdge{}
	for _, id := range s.order {
		obj := s.objects[id]
		switch obj.Kind {
		case KindPoint:
			doc.Points = append(doc.Points, DocumentPoint{
				ID:         obj.ID,
				Name:       obj.Name,
				Label:      obj.Label,
				Position:   obj.Position,
				Material:   obj.Material,
				Collection: obj.Collection,
			})
		case KindEdge:
			doc.Edges = append(doc.Edges, DocumentEdge{
				ID:         obj.ID,
				Name:       obj.Name,
				From:       s.objects[obj.From].Name,
				To:         s.objects[obj.To].Name,
				Curve:      obj.Curve,
				Material:   obj.Material,
				Collection: obj.Collection,
			})
		}
	}
	return doc
}

// ReadDocument decodes a JSON scene document, plain or snappy framed
func ReadDocument(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if head, err := br.Peek(len(snappyMagic)); err == nil && bytes.Equal(head, snappyMagic) {
		src = snappy.NewReader(br)
	}

	var doc Document
	if err := json.NewDecoder(src).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadDocument, doc.Version)
	}
	return &doc, nil
}

// Point returns the point with the given object name
func (d *Document) Point(name string) (DocumentPoint, bool) {
	for _, p := range d.Points {
		if p.Name == name {
			return p, true
		}
	}
	return DocumentPoint{}, false
}

// Degree counts edges incident to the named point. A self-loop counts twice.
func (d *Document) Degree(name string) int {
	n := 0
	for _, e := range d.Edges {
		if e.From == name {
			n++
		}
		if e.To == name {
			n++
		}
	}
	return n
}
