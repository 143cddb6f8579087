package gemini

import "fmt"

const classifyPrompt = `You are an expert in waste management and recycling. Analyze this image and provide:
1. The type of waste (e.g., plastic, paper, glass, metal, organic, etc.)
2. An estimate of the quantity or amount (in kg or lb or liters)
3. Your confidence level in this assessment (as a percentage)
4. The bin it goes in (choose from: recyclables, landfill, and organics)

DO NOT ENTER ANY OTHER WORDS FOR THE QUANTITY. ONLY 10 kg or 0.5 kg things like that. Not approximately.... Or do 0.5-10 kg.

Respond in JSON format like this:
{
  "wasteType": "type of waste",
  "quantity": "estimated quantity with unit",
  "confidence": confidence level as a number between 0 and 1,
  "bin": "bin name"
}`

func contaminationPrompt(targetBin string) string {
	return fmt.Sprintf(`You are an expert in waste management and recycling. The user is assessing contamination for the %q bin. Analyze the image and estimate:
1) contaminationPercentage: the fraction of visible items that do NOT belong in the %q bin (a number between 0 and 1)
2) contaminationSummary: a short sentence (max 20 words) describing the main contaminants
Optionally include:
3) confidence: number between 0 and 1
4) wasteType: overall dominant waste type
5) quantity: estimated quantity with unit

Respond in pure JSON:
{
  "contaminationPercentage": number,
  "contaminationSummary": "short description",
  "confidence": number,
  "wasteType": "string",
  "quantity": "string"
}`, targetBin, targetBin)
}
