// Package systems 提供俯视角游戏的通用帧更新系统。
//
// 各系统之间存在严格的执行顺序约定，宿主游戏（或 pkg/app.App）
// 必须按以下顺序每帧调用 Update：
//
//  1. PhysicsSystem      —— 速度积分，确定所有实体本帧的最终位置
//  2. TrackTargetSystem  —— 跟踪实体复制目标实体的最终位置
//  3. YSortSystem        —— 根据最终位置计算渲染深度
//  4. CameraSystem       —— 更新镜头位置与震屏
//  5. SpatialAudioSystem —— 根据镜头位置衰减声源音量
//
// 绘制阶段（ebiten 的 Draw 回调）调用 RenderSystem.Draw。
// 这个顺序保证跟踪实体和深度排序读到的都是目标当前帧的最终位置，
// 不会出现滞后一帧或读到中间状态的问题。
package systems
