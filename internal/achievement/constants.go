package achievement

// Log messages
const (
	LogMsgAchievementUnlocked = "Achievement unlocked"
	LogMsgRewardFailed        = "Failed to grant achievement reward"
	LogMsgMinigameReward      = "Minigame reward granted"
	LogMsgFailedToRecord      = "Failed to record unlocked achievement"
)
