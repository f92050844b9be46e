package config

import (
	"math"
	"testing"
)

// TestGridIndexAt 测试屏幕坐标到格子索引的换算
func TestGridIndexAt(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		want   int
		wantOK bool
	}{
		{"左上角格子", GridOriginX + 1, GridOriginY + 1, 0, true},
		{"第一行最后一格", GridOriginX + 4*GridCellSize + 10, GridOriginY + 10, 4, true},
		{"第二行第一格", GridOriginX + 10, GridOriginY + GridCellSize + 10, 5, true},
		{"右下角格子", GridOriginX + 5*GridCellSize - 1, GridOriginY + 5*GridCellSize - 1, 24, true},
		{"网格左侧", GridOriginX - 1, GridOriginY + 10, 0, false},
		{"网格下方", GridOriginX + 10, GridOriginY + 5*GridCellSize, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GridIndexAt(tt.x, tt.y)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("GridIndexAt(%v, %v) = %d, %v; want %d, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// TestGridCellOriginRoundTrip 格子左上角坐标应当落回同一个格子
func TestGridCellOriginRoundTrip(t *testing.T) {
	for i := 0; i < 25; i++ {
		x, y := GridCellOrigin(i)
		got, ok := GridIndexAt(x+1, y+1)
		if !ok || got != i {
			t.Errorf("cell %d: GridIndexAt returned %d, %v", i, got, ok)
		}
	}
}

// TestCompassAngleAt 测试罗盘方位角
func TestCompassAngleAt(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want int
	}{
		{"正北", CompassCenterX, CompassCenterY - 50, 0},
		{"正东", CompassCenterX + 50, CompassCenterY, 90},
		{"正南", CompassCenterX, CompassCenterY + 50, 180},
		{"正西", CompassCenterX - 50, CompassCenterY, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompassAngleAt(tt.x, tt.y); got != tt.want {
				t.Errorf("CompassAngleAt = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestCompassPointInverse CompassPoint 与 CompassAngleAt 互逆
func TestCompassPointInverse(t *testing.T) {
	for _, deg := range []int{0, 45, 135, 200, 359} {
		x, y := CompassPoint(deg, CompassRadius)
		if got := CompassAngleAt(x, y); got != deg {
			t.Errorf("deg %d: round trip gave %d", deg, got)
		}
		if r := math.Hypot(x-CompassCenterX, y-CompassCenterY); math.Abs(r-CompassRadius) > 1e-9 {
			t.Errorf("deg %d: radius %v", deg, r)
		}
	}
}

// TestButtonRowXCentered 按钮行水平居中
func TestButtonRowXCentered(t *testing.T) {
	for _, count := range []int{1, 4, 7} {
		left := ButtonRowX(count, 0)
		right := ButtonRowX(count, count-1) + ButtonWidth
		if math.Abs(left-(GameWindowWidth-right)) > 1e-9 {
			t.Errorf("count %d: left margin %v, right margin %v", count, left, GameWindowWidth-right)
		}
	}
}
