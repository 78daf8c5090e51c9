package game

// Position 定义三个固定的座次角色，按顺时针出牌顺序排列。
// 先手是庄家的下家，三个角色随庄家轮转而重新分配
type Position int

const (
	Forehand   Position = iota // 先手
	Middlehand                 // 中手
	Rearhand                   // 后手
)

// positionNames 座次名称映射表
var positionNames = map[Position]string{
	Forehand:   "Forehand",
	Middlehand: "Middlehand",
	Rearhand:   "Rearhand",
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Valid 判断座次是否合法
func (p Position) Valid() bool {
	return p >= Forehand && p <= Rearhand
}

// Next 返回下一个出牌的座次（左邻）
func (p Position) Next() Position {
	return (p + 1) % 3
}
