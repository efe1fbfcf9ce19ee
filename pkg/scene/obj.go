package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// writeOBJ writes every object as a Wavefront "o" group. Vertex indices are
// global and 1-based.
func writeOBJ(w io.Writer, s *Scene, mtllib string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# graphscene %s\n", s.id)
	if mtllib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtllib)
	}

	base := 1
	buf := make([]byte, 0, 64)
	for _, id := range s.order {
		obj := s.objects[id]
		mesh := s.Mesh(*obj)

		fmt.Fprintf(bw, "o %s\n", objName(obj.Name))
		fmt.Fprintf(bw, "usemtl %s\n", obj.Material)

		for _, v := range mesh.Vertices {
			buf = append(buf[:0], "v "...)
			buf = strconv.AppendFloat(buf, v.X, 'f', 6, 64)
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, v.Y, 'f', 6, 64)
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, v.Z, 'f', 6, 64)
			buf = append(buf, '\n')
			bw.Write(buf)
		}
		for _, f := range mesh.Faces {
			buf = append(buf[:0], 'f')
			for _, idx := range f {
				buf = append(buf, ' ')
				buf = strconv.AppendInt(buf, int64(base+idx), 10)
			}
			buf = append(buf, '\n')
			bw.Write(buf)
		}
		base += len(mesh.Vertices)
	}
	return bw.Flush()
}

// WriteMTL writes the material library for an OBJ export. Emissive
// materials get a white Ke; gradient materials use the ramp midpoint as Kd.
func WriteMTL(w io.Writer, s *Scene) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# graphscene %s\n", s.id)
	for _, m := range s.materials {
		c := m.BaseColor()
		fmt.Fprintf(bw, "\nnewmtl %s\n", m.Name)
		if strength, ok := m.Emissive(); ok {
			fmt.Fprintf(bw, "# emission strength %g\n", strength)
			fmt.Fprintf(bw, "Kd 1.000000 1.000000 1.000000\n")
			fmt.Fprintf(bw, "Ke 1.000000 1.000000 1.000000\n")
		} else {
			fmt.Fprintf(bw, "# base colour %s\n", c.Hex())
			fmt.Fprintf(bw, "Kd %.6f %.6f %.6f\n", c.R, c.G, c.B)
		}
		fmt.Fprintf(bw, "d %.6f\n", c.A)
		fmt.Fprintf(bw, "illum 2\n")
	}
	return bw.Flush()
}

// objName keeps a name on one line
func objName(name string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(name)
}
