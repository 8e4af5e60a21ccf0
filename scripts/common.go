package scripts

import (
	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/logger"
	"Hollowmere/internal/services"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// InteractionListener receives interactions dispatched by an
// InteractableBehaviour on the same GameObject.
type InteractionListener interface {
	OnInteract(interactor *behaviour.GameObject)
}

// playAt fires a one-shot of a content sound. Empty names are ignored.
func playAt(name string, pos mgl32.Vec3) {
	if name == "" {
		return
	}
	svc := services.Get()
	snd, ok := svc.Content.Sound(name)
	if !ok {
		logger.Log.Warn("Sound not found in content table", zap.String("sound", name))
		return
	}
	if err := svc.Audio.PlayOneShot(snd, pos); err != nil {
		logger.Log.Warn("Failed to play sound", zap.String("sound", name), zap.Error(err))
	}
}

// worldPoint maps a local offset on obj to world space.
func worldPoint(obj *behaviour.GameObject, local mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(local, obj.Transform.WorldMatrix())
}

// findDescendant searches obj's subtree, breadth first, for name.
func findDescendant(obj *behaviour.GameObject, name string) *behaviour.GameObject {
	queue := obj.Children()
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next.Name == name {
			return next
		}
		queue = append(queue, next.Children()...)
	}
	return nil
}

// destroy removes obj at the start of the next frame, or immediately when it
// is not registered with a scene.
func destroy(obj *behaviour.GameObject) {
	if cm := obj.Scene(); cm != nil {
		cm.DestroyGameObject(obj)
		return
	}
	obj.Destroy()
}

func deltaTime() float32 {
	return behaviour.Time.DeltaTime
}
