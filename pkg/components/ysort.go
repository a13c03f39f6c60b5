package components

import "github.com/gonewx/topdown/pkg/ecs"

// YSort 系列组件
//
// 俯视角场景中，画面下方的实体应遮挡上方的实体。
// YSortSystem 根据实体的 Y 坐标计算渲染深度：
//
//	Z = (Y - Offset) * YSortScale
//
// 屏幕坐标 Y 向下增长，Y 越大（越靠下）Z 越大，
// RenderSystem 按 Z 从小到大绘制，因此靠下的实体后绘制、显示在上层。
// Offset 把深度参考点向上偏移（例如影子用正偏移排到本体之前）。

// YSortComponent 每帧根据实体Y坐标覆写渲染深度
type YSortComponent struct {
	// Offset 深度参考点的Y偏移（像素）
	Offset float64
}

// YSortChildComponent 子实体深度排序组件
// 深度公式与 YSortComponent 完全相同，作用于子实体自己的
// 世界坐标和 Offset——位置组件存的就是世界坐标，
// 父实体的深度参数不会影响子实体（父子模式）。
//
// 典型用法：角色本体使用 YSortComponent，
// 角色的影子作为子实体使用 YSortChildComponent，
// 影子拥有自己的深度参考点又不脱离角色的整体排序
type YSortChildComponent struct {
	// Parent 父实体ID（拥有 YSortComponent 的实体），
	// 标注父子配对关系；静态变体用它等待父实体就绪
	Parent ecs.EntityID

	// Offset 深度参考点的Y偏移（像素）
	Offset float64
}

// YSortStaticComponent 静态深度排序组件
// 计算公式与 YSortComponent 相同，但只在组件添加后生效一次。
// 适用于位置不再变化的场景物件（树木、建筑等），省去每帧重算
type YSortStaticComponent struct {
	// Offset 深度参考点的Y偏移（像素）
	Offset float64
}

// YSortStaticChildComponent 静态子实体深度排序组件
// YSortChildComponent 的只生效一次版本
type YSortStaticChildComponent struct {
	// Parent 父实体ID（拥有 YSortStaticComponent 的实体）
	Parent ecs.EntityID

	// Offset 深度参考点的Y偏移（像素）
	Offset float64
}
