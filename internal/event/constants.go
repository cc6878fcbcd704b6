package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Topic names an event kind. The set of topics is closed: every topic has
// exactly one payload type, and the payload type reports its topic.
type Topic string

// Plot and plant lifecycle topics
const (
	TopicPlantPlanted     Topic = "plant:planted"
	TopicPlantWatered     Topic = "plant:watered"
	TopicPlantGrowth      Topic = "plant:growth"
	TopicPlantReady       Topic = "plant:ready"
	TopicPlantHarvested   Topic = "plant:harvested"
	TopicPlantAccelerated Topic = "plant:accelerated"
	TopicPlantError       Topic = "plant:error"
)

// Era and travel topics
const (
	TopicTravelStarted       Topic = "timetravel:started"
	TopicTravelStep          Topic = "timetravel:step"
	TopicTravelSuccess       Topic = "timetravel:success"
	TopicTravelFailed        Topic = "timetravel:failed"
	TopicTravelCooldownReady Topic = "timetravel:cooldown-ready"
	TopicEraUnlocked         Topic = "era:unlocked"
)

// Progression topics
const (
	TopicAchievementUnlocked Topic = "achievement:unlocked"
	TopicMinigameCompleted   Topic = "minigame:completed"
	TopicInventoryChanged    Topic = "inventory:changed"
	TopicPlayerLevelUp       Topic = "player:levelup"
)

// Session topics
const (
	TopicGameLoaded Topic = "game:loaded"
	TopicGameSaved  Topic = "game:saved"
	TopicGameReset  Topic = "game:reset"
	TopicToast      Topic = "ui:toast"
)

// AllTopics lists every topic the bus carries
var AllTopics = []Topic{
	TopicPlantPlanted, TopicPlantWatered, TopicPlantGrowth, TopicPlantReady,
	TopicPlantHarvested, TopicPlantAccelerated, TopicPlantError,
	TopicTravelStarted, TopicTravelStep, TopicTravelSuccess, TopicTravelFailed,
	TopicTravelCooldownReady, TopicEraUnlocked,
	TopicAchievementUnlocked, TopicMinigameCompleted, TopicInventoryChanged, TopicPlayerLevelUp,
	TopicGameLoaded, TopicGameSaved, TopicGameReset, TopicToast,
}

// Subscription patterns
const (
	// PatternAll matches every topic
	PatternAll = "*"
	// NamespaceSeparator splits "plant:growth" into namespace and name
	NamespaceSeparator = ":"
)

// Listener priorities. Higher runs first.
const (
	PriorityRecorder = 100
	PriorityDefault  = 0
	PriorityObserver = -100
)

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0644
)

// Log message constants
const (
	LogMsgListenerFailed        = "Event listener failed"
	LogMsgListenerPanicked      = "Event listener panicked"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgUnknownPattern        = "Subscription pattern matches no known topic"
)
