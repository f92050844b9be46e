package config

import "math"

// 窗口与布局常量
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 480
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 640

	// IndicatorY 进度圆点的 Y 坐标
	IndicatorY = 16.0
	// IndicatorSpacing 进度圆点间距
	IndicatorSpacing = 22.0
	// IndicatorRadius 进度圆点半径
	IndicatorRadius = 6.0

	// GridOriginX 第三章网格左上角 X
	GridOriginX = 115.0
	// GridOriginY 第三章网格左上角 Y
	GridOriginY = 200.0
	// GridCellSize 网格单元边长
	GridCellSize = 50.0

	// ButtonWidth 通用按钮宽度
	ButtonWidth = 56.0
	// ButtonHeight 通用按钮高度
	ButtonHeight = 40.0
	// ButtonRowY 底部按钮行 Y 坐标
	ButtonRowY = 520.0

	// CompassCenterX 航海章节罗盘中心 X
	CompassCenterX = 240.0
	// CompassCenterY 航海章节罗盘中心 Y
	CompassCenterY = 300.0
	// CompassRadius 罗盘半径
	CompassRadius = 120.0
)

// 航线图节点布局
const (
	// RouteMapCenterY 航线图中心 Y
	RouteMapCenterY = 300.0
	// RouteMapRadius 节点所在圆的半径
	RouteMapRadius = 150.0
	// RouteNodeRadius 节点半径（点击判定范围）
	RouteNodeRadius = 22.0
)

// GridCellOrigin 网格第 index 个格子左上角坐标（行优先）
func GridCellOrigin(index int) (x, y float64) {
	row, col := index/5, index%5
	return GridOriginX + float64(col)*GridCellSize, GridOriginY + float64(row)*GridCellSize
}

// GridIndexAt 屏幕坐标所在的格子，不在网格内时返回 false
func GridIndexAt(x, y float64) (int, bool) {
	if x < GridOriginX || y < GridOriginY {
		return 0, false
	}
	col := int((x - GridOriginX) / GridCellSize)
	row := int((y - GridOriginY) / GridCellSize)
	if col >= 5 || row >= 5 {
		return 0, false
	}
	return row*5 + col, true
}

// ButtonRowX 一行 count 个按钮水平居中时，第 i 个按钮的左边 X
func ButtonRowX(count, i int) float64 {
	const gap = 8.0
	total := float64(count)*ButtonWidth + float64(count-1)*gap
	start := (GameWindowWidth - total) / 2
	return start + float64(i)*(ButtonWidth+gap)
}

// CompassAngleAt 屏幕坐标相对罗盘中心的方位角
// 0 度指向正上方（北），顺时针增加，范围 0..359
func CompassAngleAt(x, y float64) int {
	dx := x - CompassCenterX
	dy := CompassCenterY - y
	deg := math.Atan2(dx, dy) * 180 / math.Pi
	a := int(math.Round(deg))
	a %= 360
	if a < 0 {
		a += 360
	}
	return a
}

// CompassPoint 罗盘上指定方位角、指定半径处的屏幕坐标
func CompassPoint(deg int, radius float64) (x, y float64) {
	rad := float64(deg) * math.Pi / 180
	return CompassCenterX + radius*math.Sin(rad), CompassCenterY - radius*math.Cos(rad)
}

// RouteNodePosition n 个节点均匀排列在圆上时第 i 个节点的坐标
func RouteNodePosition(i, n int) (x, y float64) {
	rad := 2 * math.Pi * float64(i) / float64(n)
	return CompassCenterX + RouteMapRadius*math.Sin(rad), RouteMapCenterY - RouteMapRadius*math.Cos(rad)
}
