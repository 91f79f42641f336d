package diagram

// Node is a single vertex in a diagram, identified by a stable textual id unique within the
// Database that owns it.
type Node struct {
	ID    string
	Label string
	Shape NodeShape
	Class string // optional style/class tag, empty if unset

	auto bool // true if this node was auto-created from an edge endpoint reference
}

// Edge is a directed connection between two node ids, in the order the source declared them.
type Edge struct {
	From, To string
	Type     EdgeType
	Label    string // optional, empty if unset
	Length   int    // minimum layer span; 0 means "use the default of 1"
}

// NodeData is the input to [Database.AddNode].
type NodeData struct {
	ID    string
	Label string // if empty, the id is used as the label
	Shape NodeShape
	Class string
}

// EdgeData is the input to [Database.AddEdge].
type EdgeData struct {
	From, To string
	Type     EdgeType
	Label    string
	Length   int
}

// Database is the in-memory graph model of a single parsed diagram: an insertion-ordered set of
// nodes, an insertion-ordered list of edges (parallel edges permitted), and the diagram's
// direction. It is built by exactly one [Parser] during a single parse and is read-only
// thereafter, the same single-writer/many-reader lifetime the dot language's AST follows.
type Database struct {
	direction Direction
	nodes     map[string]*Node
	order     []string // node ids in first-seen order
	edges     []Edge
	classDefs map[string]string
}

// NewDatabase constructs an empty Database with the given default direction.
func NewDatabase(dir Direction) *Database {
	return &Database{
		direction: dir,
		nodes:     make(map[string]*Node),
		classDefs: make(map[string]string),
	}
}

// Direction returns the diagram's current layout direction.
func (db *Database) Direction() Direction {
	return db.direction
}

// SetDirection changes the diagram's layout direction.
func (db *Database) SetDirection(dir Direction) {
	db.direction = dir
}

// AddNode upserts a node by id. A second occurrence of the same id updates the node: the label
// is overwritten when the new occurrence provides one (last-wins), while the shape is kept from
// the first occurrence that set one (first-wins) unless the node was auto-created as a default
// rectangle, in which case the first real shape declaration wins. This resolves the open
// question in spec.md §9.1: re-declaration is last-wins for label, first-wins for shape.
func (db *Database) AddNode(data NodeData) (*Node, error) {
	if data.ID == "" {
		return nil, &DatabaseError{Message: "node id must not be empty"}
	}

	label := data.Label
	if label == "" {
		label = data.ID
	}

	existing, ok := db.nodes[data.ID]
	if !ok {
		n := &Node{ID: data.ID, Label: label, Shape: data.Shape, Class: data.Class}
		db.nodes[data.ID] = n
		db.order = append(db.order, data.ID)
		return n, nil
	}

	if data.Label != "" {
		existing.Label = data.Label
	}
	if existing.autoCreated() && data.Shape != Rectangle {
		existing.Shape = data.Shape
		existing.auto = false
	}
	if data.Class != "" {
		existing.Class = data.Class
	}
	return existing, nil
}

// autoCreated reports whether the node was created by [Database.addAutoNode] (as an edge
// endpoint or class target) and has not yet received a non-rectangle shape from AddNode.
func (n *Node) autoCreated() bool {
	return n.auto
}

// AddSimpleNode adds a node with only an id, equivalent to AddNode with a default shape and the
// id as label.
func (db *Database) AddSimpleNode(id string) (*Node, error) {
	return db.AddNode(NodeData{ID: id})
}

// AddEdge appends an edge to the diagram, auto-creating any endpoint node that does not exist
// yet with its id as its label and the default shape. Auto-creation is always a success, never
// an error.
func (db *Database) AddEdge(data EdgeData) (*Edge, error) {
	if data.From == "" || data.To == "" {
		return nil, &DatabaseError{Message: "edge endpoints must not be empty"}
	}

	db.addAutoNode(data.From)
	db.addAutoNode(data.To)

	length := data.Length
	if length < 1 {
		length = 1
	}

	db.edges = append(db.edges, Edge{From: data.From, To: data.To, Type: data.Type, Label: data.Label, Length: length})
	return &db.edges[len(db.edges)-1], nil
}

// AddLabeledEdge is a convenience wrapper over AddEdge for the common case of a plain labeled
// edge with the default length hint.
func (db *Database) AddLabeledEdge(from, to string, typ EdgeType, label string) (*Edge, error) {
	return db.AddEdge(EdgeData{From: from, To: to, Type: typ, Label: label})
}

// AddSimpleEdge is a convenience wrapper over AddEdge for an unlabeled edge.
func (db *Database) AddSimpleEdge(from, to string, typ EdgeType) (*Edge, error) {
	return db.AddEdge(EdgeData{From: from, To: to, Type: typ})
}

func (db *Database) addAutoNode(id string) {
	if _, ok := db.nodes[id]; ok {
		return
	}
	n := &Node{ID: id, Label: id, Shape: Rectangle, auto: true}
	db.nodes[id] = n
	db.order = append(db.order, id)
}

// GetNode looks up a node by id.
func (db *Database) GetNode(id string) (*Node, bool) {
	n, ok := db.nodes[id]
	return n, ok
}

// Nodes returns the diagram's nodes in insertion order.
func (db *Database) Nodes() []*Node {
	out := make([]*Node, 0, len(db.order))
	for _, id := range db.order {
		out = append(out, db.nodes[id])
	}
	return out
}

// Edges returns the diagram's edges in insertion order.
func (db *Database) Edges() []Edge {
	return db.edges
}

// NodeCount returns the number of distinct nodes in the diagram.
func (db *Database) NodeCount() int {
	return len(db.order)
}

// EdgeCount returns the number of edges in the diagram.
func (db *Database) EdgeCount() int {
	return len(db.edges)
}

// Clear resets the Database to the empty state, preserving Direction.
func (db *Database) Clear() {
	db.nodes = make(map[string]*Node)
	db.order = nil
	db.edges = nil
	db.classDefs = make(map[string]string)
}

// AddClassDef records a named style definition (a "classDef" statement's raw style text). A
// second definition of the same name overwrites the first.
func (db *Database) AddClassDef(name, style string) {
	db.classDefs[name] = style
}

// ClassDef looks up a previously recorded style definition by name.
func (db *Database) ClassDef(name string) (string, bool) {
	s, ok := db.classDefs[name]
	return s, ok
}

// SetNodeClass assigns a class name to a node, auto-creating it if it does not exist yet, the
// same auto-creation policy [Database.AddEdge] uses for edge endpoints.
func (db *Database) SetNodeClass(id, class string) {
	db.addAutoNode(id)
	db.nodes[id].Class = class
}
