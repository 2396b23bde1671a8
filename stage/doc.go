// Package stage is the retained-mode 2D engine that the game's screens run on,
// built on [Ebitengine].
//
// A [Scene] owns a tree of [Node] values rooted at [Scene.Root], the texture
// and animation registries, a tween manager ([Tweens], backed by [gween]), a
// timer scheduler ([Clock]), camera effects ([Camera]) and pointer input.
// Children inherit their parent's transform and alpha; siblings draw in
// [Node.Depth] order.
//
//	scene := stage.NewScene(1280, 720)
//	bunny := stage.NewSprite("bunny", nil)
//	bunny.SetPosition(640, 360)
//	scene.Root().AddChild(bunny)
//	_ = bunny.Play(scene.Anims(), "bunny_idle")
//
//	scene.Tweens().Add(stage.TweenConfig{
//		Target:   bunny,
//		Props:    []stage.Prop{stage.PropY(300)},
//		Duration: 0.5,
//		Ease:     ease.OutQuad,
//		Yoyo:     true,
//	})
//
// Procedural art is painted with [Graphics] and registered as a
// [SpriteSheet]; frame animations are declared with [AnimationDef].
//
// # Frame loop
//
// [Scene.Update] reads real pointer input and calls [Scene.Step] with one
// tick of time. Step consumes one injected pointer event (see
// [Scene.InjectClick]), advances frame animations and per-node OnUpdate
// hooks, tweens, timers and camera effects, then scene-level update hooks.
// Tests drive a scene by calling Step directly.
//
// # ECS
//
// When an [EntityStore] is set with [Scene.SetEntityStore], pointer events on
// nodes with a non-zero EntityID are forwarded as [InteractionEvent] values.
// The ecs package provides a Donburi-backed store.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package stage
