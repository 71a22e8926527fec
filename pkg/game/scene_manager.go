package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按变体名称创建场景，避免循环依赖
type SceneFactory func(variant string) (Scene, error)

// SceneManager manages which animation scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is torn down first if it implements Teardown.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if td, ok := sm.currentScene.(Teardown); ok {
		td.Teardown()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadVariant 创建并切换到指定变体的场景
// 创建失败时保留当前场景
func (sm *SceneManager) LoadVariant(variant string) {
	log.Printf("[SceneManager] 加载变体: %s", variant)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	newScene, err := sm.sceneFactory(variant)
	if err != nil {
		log.Printf("[SceneManager] 错误: 无法创建场景 %s: %v", variant, err)
		return
	}
	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] 成功切换到变体: %s", variant)
}

// Shutdown 保存并销毁当前场景，可重复调用
func (sm *SceneManager) Shutdown() {
	if sm.currentScene == nil {
		return
	}
	if s, ok := sm.currentScene.(Saveable); ok && !s.SaveOnExit() {
		log.Printf("[SceneManager] Warning: scene failed to save on exit")
	}
	if td, ok := sm.currentScene.(Teardown); ok {
		td.Teardown()
	}
	sm.currentScene = nil
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
