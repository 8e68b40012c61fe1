package network

import "fmt"

// Connection is one weighted edge between two neurons, addressed by global
// neuron index.
//
// Neurons are numbered layer by layer, input layer first. Every layer except
// the output layer is followed by its bias neuron, so layer l occupies
// indices [start, start+Width] with the bias at start+Width.
type Connection struct {
	From   int
	To     int
	Weight float64
}

// TotalNeurons returns the number of neurons, bias neurons included.
func (n *Network) TotalNeurons() int {
	total := 0
	for _, info := range n.layers {
		total += info.Width + 1
	}
	return total - 1
}

// neuronStart returns the global index of the first neuron of layer l.
func (n *Network) neuronStart(l int) int {
	start := 0
	for k := 0; k < l; k++ {
		start += n.layers[k].Width + 1
	}
	return start
}

// Connections returns every connection in arena order.
func (n *Network) Connections() []Connection {
	conns := make([]Connection, 0, n.TotalConnections())
	weights := n.weights.Data()
	prevStart := 0
	for l := 1; l < len(n.layers); l++ {
		info := n.layers[l]
		start := prevStart + n.layers[l-1].Width + 1
		for i := 0; i < info.Width; i++ {
			row := weights[info.Offset+i*info.FanIn : info.Offset+(i+1)*info.FanIn]
			for j, w := range row {
				conns = append(conns, Connection{From: prevStart + j, To: start + i, Weight: w})
			}
		}
		prevStart = start
	}
	return conns
}

// SetWeight sets the weight of the connection from -> to.
//
// Returns ErrNoConnection when the two neurons are not connected.
func (n *Network) SetWeight(from, to int, w float64) error {
	for l := 1; l < len(n.layers); l++ {
		start := n.neuronStart(l)
		info := n.layers[l]
		if to < start || to >= start+info.Width {
			continue
		}
		prevStart := n.neuronStart(l - 1)
		if from < prevStart || from >= prevStart+info.FanIn {
			break
		}
		n.weights.Data()[info.Offset+(to-start)*info.FanIn+(from-prevStart)] = w
		return nil
	}
	return fmt.Errorf("%w: %d -> %d", ErrNoConnection, from, to)
}
