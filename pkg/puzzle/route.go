package puzzle

import (
	"fmt"
	"sort"
)

// Edge 无向带权边
type Edge struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Weight int    `yaml:"weight"`
}

// DefaultRouteEdges 默认航线图
var DefaultRouteEdges = []Edge{
	{From: "RIO", To: "DKR", Weight: 10},
	{From: "DKR", To: "LIS", Weight: 8},
	{From: "LIS", To: "MOS", Weight: 13},
	{From: "MOS", To: "ZRH", Weight: 9},
	{From: "RIO", To: "LIS", Weight: 18},
	{From: "LIS", To: "BCN", Weight: 6},
	{From: "BCN", To: "ZRH", Weight: 17},
}

// 默认航线参数
const (
	DefaultRouteOrigin      = "RIO"
	DefaultRouteDestination = "ZRH"
	DefaultRouteTargetCost  = 40
)

// Graph 无向带权图
type Graph struct {
	adj   map[string]map[string]int
	nodes []string
}

// NewGraph 由边列表构建图
func NewGraph(edges []Edge) (*Graph, error) {
	g := &Graph{adj: make(map[string]map[string]int)}
	for _, e := range edges {
		if e.From == "" || e.To == "" || e.From == e.To {
			return nil, fmt.Errorf("invalid edge %s-%s", e.From, e.To)
		}
		if e.Weight <= 0 {
			return nil, fmt.Errorf("edge %s-%s: weight must be positive, got %d", e.From, e.To, e.Weight)
		}
		if _, dup := g.adj[e.From][e.To]; dup {
			return nil, fmt.Errorf("duplicate edge %s-%s", e.From, e.To)
		}
		g.link(e.From, e.To, e.Weight)
		g.link(e.To, e.From, e.Weight)
	}
	sort.Strings(g.nodes)
	return g, nil
}

func (g *Graph) link(a, b string, w int) {
	if _, ok := g.adj[a]; !ok {
		g.adj[a] = make(map[string]int)
		g.nodes = append(g.nodes, a)
	}
	g.adj[a][b] = w
}

// Weight 返回两节点之间的边权
func (g *Graph) Weight(a, b string) (int, bool) {
	w, ok := g.adj[a][b]
	return w, ok
}

// Has 节点是否存在
func (g *Graph) Has(node string) bool {
	_, ok := g.adj[node]
	return ok
}

// Nodes 返回排序后的节点列表
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Neighbors 返回排序后的相邻节点
func (g *Graph) Neighbors(node string) []string {
	out := make([]string, 0, len(g.adj[node]))
	for n := range g.adj[node] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// RouteRules 航线章节规则
type RouteRules struct {
	Graph       *Graph
	Origin      string
	Destination string
	TargetCost  int
}

// DefaultRouteRules 返回默认航线规则
func DefaultRouteRules() RouteRules {
	g, err := NewGraph(DefaultRouteEdges)
	if err != nil {
		panic(err)
	}
	return RouteRules{
		Graph:       g,
		Origin:      DefaultRouteOrigin,
		Destination: DefaultRouteDestination,
		TargetCost:  DefaultRouteTargetCost,
	}
}

// Solutions 列出从起点到终点、总权重等于目标值的所有简单路径
func (r RouteRules) Solutions() [][]string {
	var out [][]string
	visited := map[string]bool{r.Origin: true}
	path := []string{r.Origin}

	var walk func(node string, cost int)
	walk = func(node string, cost int) {
		if node == r.Destination {
			if cost == r.TargetCost {
				out = append(out, append([]string(nil), path...))
			}
			return
		}
		for _, next := range r.Graph.Neighbors(node) {
			w, _ := r.Graph.Weight(node, next)
			if visited[next] || cost+w > r.TargetCost {
				continue
			}
			visited[next] = true
			path = append(path, next)
			walk(next, cost+w)
			path = path[:len(path)-1]
			visited[next] = false
		}
	}
	walk(r.Origin, 0)
	return out
}

// RouteState 航线章节状态
//
// Cost 始终等于 Route 上相邻节点之间边权之和，Route[0] 始终是起点。
type RouteState struct {
	Route []string `yaml:"route"`
	Cost  int      `yaml:"cost"`
}

// NewRouteState 创建位于起点的航线
func NewRouteState(origin string) *RouteState {
	return &RouteState{Route: []string{origin}}
}

// Last 当前所在节点
func (s *RouteState) Last() string {
	return s.Route[len(s.Route)-1]
}

// Hop 追加一个相邻节点
//
// 到达终点时只有总权重等于目标值才算完成；否则返回 ReasonWrongCost，
// 玩家需要撤销或重置后才能继续。
func Hop(s *RouteState, node string, rules RouteRules) Verdict {
	last := s.Last()
	if last == rules.Destination {
		if s.Cost == rules.TargetCost {
			return reject(ReasonAlreadyComplete)
		}
		return reject(ReasonAtDestination)
	}

	w, ok := rules.Graph.Weight(last, node)
	if !ok {
		return reject(ReasonNotAdjacent)
	}

	s.Route = append(s.Route, node)
	s.Cost += w

	if node != rules.Destination {
		return accept()
	}
	if s.Cost == rules.TargetCost {
		return complete()
	}
	return reject(ReasonWrongCost)
}

// UndoHop 撤销最后一步并扣除对应边权
// 已在起点时返回 false
func UndoHop(s *RouteState, rules RouteRules) bool {
	if len(s.Route) <= 1 {
		return false
	}
	n := len(s.Route)
	w, _ := rules.Graph.Weight(s.Route[n-2], s.Route[n-1])
	s.Route = s.Route[:n-1]
	s.Cost -= w
	return true
}

// ResetRoute 回到起点
func ResetRoute(s *RouteState, rules RouteRules) {
	s.Route = []string{rules.Origin}
	s.Cost = 0
}
